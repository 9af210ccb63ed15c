package service

import (
	"context"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
)

// TagsService defines business logic for transaction tags.
type TagsService interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Update(ctx context.Context, id int64, req dto.UpdateTagRequest) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type tagsService struct {
	repo storage.TagsRepository
}

func NewTagsService(repo storage.TagsRepository) TagsService {
	return &tagsService{repo: repo}
}

func (s *tagsService) Create(_ context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	tag := &models.Tag{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	if err := s.repo.Insert(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagsService) List(_ context.Context) ([]models.Tag, error) {
	return s.repo.GetAll()
}

func (s *tagsService) Update(_ context.Context, id int64, req dto.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagsService) Delete(_ context.Context, id int64) error {
	return s.repo.Delete(id)
}

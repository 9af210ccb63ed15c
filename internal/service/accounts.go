package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
	"github.com/pmarinho/fintrack/internal/valuation"
)

// AccountsService defines business logic for account management and
// valuated listings.
type AccountsService interface {
	Create(ctx context.Context, req dto.CreateAccountRequest) (*models.Account, error)
	List(ctx context.Context) ([]dto.AccountResponse, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, id string, req dto.UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

type accountsService struct {
	repo     storage.AccountsRepository
	valuator *valuation.Valuator
}

func NewAccountsService(repo storage.AccountsRepository, valuator *valuation.Valuator) AccountsService {
	return &accountsService{repo: repo, valuator: valuator}
}

func (s *accountsService) Create(_ context.Context, req dto.CreateAccountRequest) (*models.Account, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	acct := &models.Account{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Balance:       req.Balance,
		Currency:      req.Currency,
		AccountType:   models.AccountType(req.AccountType),
		AccountNumber: req.AccountNumber,
		IsActive:      active,
		LastUpdated:   time.Now().UTC(),
	}

	if err := s.repo.Insert(acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// List returns every account with its normalized value. Conversion failures
// degrade per account inside the valuator; the listing itself only fails on
// storage errors.
func (s *accountsService) List(ctx context.Context) ([]dto.AccountResponse, error) {
	accounts, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.valuator.ValuateAccounts(ctx, accounts), nil
}

func (s *accountsService) Get(_ context.Context, id string) (*models.Account, error) {
	return s.repo.GetByID(id)
}

func (s *accountsService) Update(_ context.Context, id string, req dto.UpdateAccountRequest) (*models.Account, error) {
	acct, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		acct.Name = *req.Name
	}
	if req.Description != nil {
		acct.Description = *req.Description
	}
	if req.Balance != nil {
		acct.Balance = *req.Balance
	}
	if req.Currency != nil {
		acct.Currency = *req.Currency
	}
	if req.AccountType != nil {
		acct.AccountType = models.AccountType(*req.AccountType)
	}
	if req.AccountNumber != nil {
		acct.AccountNumber = *req.AccountNumber
	}
	if req.IsActive != nil {
		acct.IsActive = *req.IsActive
	}
	acct.LastUpdated = time.Now().UTC()

	if err := s.repo.Update(acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *accountsService) Delete(_ context.Context, id string) error {
	return s.repo.Delete(id)
}

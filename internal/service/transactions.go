package service

import (
	"context"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/storage"
)

// TransactionsService exposes imported statement rows. Writes happen only
// through the import pipeline.
type TransactionsService interface {
	List(ctx context.Context) ([]dto.TransactionResponse, error)
}

type transactionsService struct {
	repo storage.TransactionsRepository
}

func NewTransactionsService(repo storage.TransactionsRepository) TransactionsService {
	return &transactionsService{repo: repo}
}

func (s *transactionsService) List(_ context.Context) ([]dto.TransactionResponse, error) {
	txs, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.TransactionResponse{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Currency:    t.Currency,
			Sender:      t.Sender,
			Receiver:    t.Receiver,
			TagID:       t.TagID,
			AccountID:   t.AccountID,
		})
	}
	return out, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/logger"
	"github.com/pmarinho/fintrack/internal/storage"
	"github.com/pmarinho/fintrack/internal/valuation"
)

// BalanceRecordsService defines business logic for balance snapshots and
// the normalized timeline built from them.
type BalanceRecordsService interface {
	Create(ctx context.Context, req dto.CreateBalanceRecordRequest) (*dto.BalanceRecordResponse, error)
	List(ctx context.Context) ([]dto.BalanceRecordResponse, error)
	ListByAccount(ctx context.Context, accountID string) ([]dto.BalanceRecordResponse, error)
	Timeline(ctx context.Context) ([]dto.TimelinePoint, error)
	Delete(ctx context.Context, id string) error
}

type balanceRecordsService struct {
	records  storage.BalanceRecordsRepository
	accounts storage.AccountsRepository
	valuator *valuation.Valuator
}

func NewBalanceRecordsService(
	records storage.BalanceRecordsRepository,
	accounts storage.AccountsRepository,
	valuator *valuation.Valuator,
) BalanceRecordsService {
	return &balanceRecordsService{records: records, accounts: accounts, valuator: valuator}
}

// Create stores a snapshot for an account. The EUR value is computed once at
// creation time when conversion applies; a failed price lookup leaves it nil
// rather than failing the snapshot. The owning account's cached balance and
// last_updated are refreshed in the same transaction as the insert.
func (s *balanceRecordsService) Create(ctx context.Context, req dto.CreateBalanceRecordRequest) (*dto.BalanceRecordResponse, error) {
	acct, err := s.accounts.GetByID(req.AccountID)
	if err != nil {
		return nil, err
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = req.RecordedAt.UTC()
	}

	eurValue, err := s.valuator.ValuateRecord(ctx, req.Balance, *acct)
	if err != nil {
		logger.L().Warn().
			Str("account_id", acct.ID).
			Str("currency", acct.Currency).
			Err(err).
			Msg("eur value unavailable for new balance record")
		eurValue = nil
	}

	rec := &models.BalanceRecord{
		ID:         uuid.NewString(),
		AccountID:  acct.ID,
		Balance:    req.Balance,
		EurValue:   eurValue,
		RecordedAt: recordedAt,
	}

	if err := s.records.Insert(rec); err != nil {
		return nil, err
	}

	// Reflect the refreshed cache in the embedded account.
	acct.Balance = req.Balance
	acct.LastUpdated = recordedAt
	rec.Account = acct

	resp := dto.BalanceRecordResponse{
		ID:         rec.ID,
		Balance:    rec.Balance,
		EurValue:   rec.EurValue,
		RecordedAt: rec.RecordedAt,
		Account: &dto.AccountResponse{
			ID:            acct.ID,
			Name:          acct.Name,
			Description:   acct.Description,
			Balance:       acct.Balance,
			Currency:      acct.Currency,
			EurValue:      acct.Balance,
			AccountType:   string(acct.AccountType),
			AccountNumber: acct.AccountNumber,
			IsActive:      acct.IsActive,
			LastUpdated:   acct.LastUpdated,
		},
	}
	return &resp, nil
}

func (s *balanceRecordsService) List(ctx context.Context) ([]dto.BalanceRecordResponse, error) {
	records, err := s.records.GetAll()
	if err != nil {
		return nil, err
	}
	return s.valuator.ValuateRecords(ctx, records), nil
}

func (s *balanceRecordsService) ListByAccount(ctx context.Context, accountID string) ([]dto.BalanceRecordResponse, error) {
	if _, err := s.accounts.GetByID(accountID); err != nil {
		return nil, err
	}
	records, err := s.records.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}
	return s.valuator.ValuateRecords(ctx, records), nil
}

// Timeline valuates the full record history and folds it onto the observed
// date grid with forward-fill.
func (s *balanceRecordsService) Timeline(ctx context.Context) ([]dto.TimelinePoint, error) {
	records, err := s.records.GetAll()
	if err != nil {
		return nil, err
	}
	return valuation.BuildTimeline(s.valuator.ValuateRecords(ctx, records)), nil
}

func (s *balanceRecordsService) Delete(_ context.Context, id string) error {
	return s.records.Delete(id)
}

package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
)

// StatsService computes the on-demand summary snapshot. Nothing is cached;
// every call folds the live account and balance-record collections.
type StatsService interface {
	Compute(ctx context.Context) (*models.StatsSnapshot, error)
}

type statsService struct {
	accounts storage.AccountsRepository
	records  storage.BalanceRecordsRepository
}

func NewStatsService(accounts storage.AccountsRepository, records storage.BalanceRecordsRepository) StatsService {
	return &statsService{accounts: accounts, records: records}
}

// Compute builds the snapshot from scratch.
//
// Currency buckets group by the raw currency code, so a "BTC" account sums
// into a "BTC" bucket in BTC units next to the "EUR" bucket. Normalized
// values play no part here.
func (s *statsService) Compute(_ context.Context) (*models.StatsSnapshot, error) {
	accounts, err := s.accounts.GetAll()
	if err != nil {
		return nil, err
	}
	records, err := s.records.GetAll()
	if err != nil {
		return nil, err
	}

	return ComputeStats(accounts, records), nil
}

// ComputeStats is the pure aggregation over already-loaded collections.
func ComputeStats(accounts []models.Account, records []models.BalanceRecord) *models.StatsSnapshot {
	byCurrency := make(map[string]decimal.Decimal)
	byType := make(map[string]int)
	active := 0

	for _, acct := range accounts {
		byCurrency[acct.Currency] = byCurrency[acct.Currency].Add(decimal.NewFromFloat(acct.Balance))
		byType[string(acct.AccountType)]++
		if acct.IsActive {
			active++
		}
	}

	totals := make(map[string]float64, len(byCurrency))
	for code, sum := range byCurrency {
		totals[code] = sum.Round(2).InexactFloat64()
	}

	return &models.StatsSnapshot{
		TotalBalanceByCurrency: totals,
		TotalAccounts:          len(accounts),
		ActiveAccounts:         active,
		TotalBalanceRecords:    len(records),
		AccountsByType:         byType,
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

func TestComputeStats(t *testing.T) {
	accounts := []models.Account{
		{ID: "a1", Balance: 1000.105, Currency: "EUR", AccountType: models.AccountTypeBank, IsActive: true},
		{ID: "a2", Balance: 500.10, Currency: "EUR", AccountType: models.AccountTypeSavings, IsActive: true},
		{ID: "a3", Balance: 0.5, Currency: "BTC", AccountType: models.AccountTypeCrypto, IsActive: true},
		{ID: "a4", Balance: 0.25, Currency: "BTC", AccountType: models.AccountTypeCrypto, IsActive: false},
		{ID: "a5", Balance: 300, Currency: "USD", AccountType: models.AccountTypeBank, IsActive: true},
	}
	records := []models.BalanceRecord{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}

	s := ComputeStats(accounts, records)

	// currency buckets sum native units, crypto included, rounded to 2 dp
	if got := s.TotalBalanceByCurrency["EUR"]; got != 1500.21 {
		t.Fatalf("EUR bucket: %v", got)
	}
	if got := s.TotalBalanceByCurrency["BTC"]; got != 0.75 {
		t.Fatalf("BTC bucket: %v", got)
	}
	if got := s.TotalBalanceByCurrency["USD"]; got != 300 {
		t.Fatalf("USD bucket: %v", got)
	}
	if len(s.TotalBalanceByCurrency) != 3 {
		t.Fatalf("bucket count: %v", s.TotalBalanceByCurrency)
	}

	if s.TotalAccounts != 5 || s.ActiveAccounts != 4 || s.TotalBalanceRecords != 3 {
		t.Fatalf("counts wrong: %+v", s)
	}
	if s.AccountsByType["bank"] != 2 || s.AccountsByType["crypto"] != 2 || s.AccountsByType["savings"] != 1 {
		t.Fatalf("type counts wrong: %v", s.AccountsByType)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil, nil)
	if s.TotalAccounts != 0 || s.ActiveAccounts != 0 || s.TotalBalanceRecords != 0 {
		t.Fatalf("counts not zero: %+v", s)
	}
	if len(s.TotalBalanceByCurrency) != 0 || len(s.AccountsByType) != 0 {
		t.Fatalf("maps not empty: %+v", s)
	}
}

func TestStatsService_Compute(t *testing.T) {
	accounts := newStubAccountsRepo(
		&models.Account{ID: "a1", Balance: 100, Currency: "EUR", AccountType: models.AccountTypeBank, IsActive: true},
	)
	records := &stubRecordsRepo{records: []models.BalanceRecord{{ID: "r1"}}}
	svc := NewStatsService(accounts, records)

	s, err := svc.Compute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalAccounts != 1 || s.TotalBalanceRecords != 1 {
		t.Fatalf("snapshot wrong: %+v", s)
	}
}

func TestStatsService_Compute_StorageError(t *testing.T) {
	accounts := newStubAccountsRepo()
	accounts.failWith = errors.New("db down")
	svc := NewStatsService(accounts, &stubRecordsRepo{})

	if _, err := svc.Compute(context.Background()); err == nil {
		t.Fatalf("expected storage error to surface")
	}
}

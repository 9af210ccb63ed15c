package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
)

func TestAccountsService_Create(t *testing.T) {
	repo := newStubAccountsRepo()
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	acct, err := svc.Create(context.Background(), dto.CreateAccountRequest{
		Name:        "Checking",
		Balance:     1200.50,
		Currency:    "EUR",
		AccountType: "bank",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(acct.ID); err != nil {
		t.Fatalf("id is not a uuid: %q", acct.ID)
	}
	if !acct.IsActive {
		t.Fatalf("isActive must default to true")
	}
	if acct.LastUpdated.IsZero() {
		t.Fatalf("lastUpdated not set")
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Name != "Checking" {
		t.Fatalf("account not persisted: %+v", repo.inserted)
	}
}

func TestAccountsService_Create_ExplicitInactive(t *testing.T) {
	repo := newStubAccountsRepo()
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	inactive := false
	acct, err := svc.Create(context.Background(), dto.CreateAccountRequest{
		Name:        "Old savings",
		Currency:    "EUR",
		AccountType: "savings",
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.IsActive {
		t.Fatalf("explicit isActive=false ignored")
	}
}

func TestAccountsService_List_Valuated(t *testing.T) {
	repo := newStubAccountsRepo(
		&models.Account{ID: "a1", Name: "Bank", Balance: 1000, Currency: "EUR", AccountType: models.AccountTypeBank},
		&models.Account{ID: "a2", Name: "Wallet", Balance: 0.5, Currency: "BTC", AccountType: models.AccountTypeCrypto},
	)
	valuator, conv := newTestValuator(map[string]float64{"BTC": 27777.78})
	svc := NewAccountsService(repo, valuator)

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(out))
	}
	if out[0].EurValue != 1000 {
		t.Fatalf("bank eurValue: %v", out[0].EurValue)
	}
	if out[1].EurValue != 0.5*27777.78 {
		t.Fatalf("crypto eurValue: %v", out[1].EurValue)
	}
	if conv.calls != 1 {
		t.Fatalf("expected a single conversion call, got %d", conv.calls)
	}
}

func TestAccountsService_List_StorageError(t *testing.T) {
	repo := newStubAccountsRepo()
	repo.failWith = errors.New("db down")
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected storage error to surface")
	}
}

func TestAccountsService_Update_PatchSemantics(t *testing.T) {
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newStubAccountsRepo(&models.Account{
		ID:          "a1",
		Name:        "Bank",
		Description: "main",
		Balance:     1000,
		Currency:    "EUR",
		AccountType: models.AccountTypeBank,
		IsActive:    true,
		LastUpdated: before,
	})
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	newName := "Primary bank"
	newBalance := 1500.0
	acct, err := svc.Update(context.Background(), "a1", dto.UpdateAccountRequest{
		Name:    &newName,
		Balance: &newBalance,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.Name != "Primary bank" || acct.Balance != 1500 {
		t.Fatalf("patched fields wrong: %+v", acct)
	}
	// untouched fields survive
	if acct.Description != "main" || acct.Currency != "EUR" || !acct.IsActive {
		t.Fatalf("unpatched fields changed: %+v", acct)
	}
	if !acct.LastUpdated.After(before) {
		t.Fatalf("lastUpdated not refreshed")
	}
	if len(repo.updated) != 1 {
		t.Fatalf("update not persisted")
	}
}

func TestAccountsService_Update_NotFound(t *testing.T) {
	repo := newStubAccountsRepo()
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	name := "x"
	_, err := svc.Update(context.Background(), "missing", dto.UpdateAccountRequest{Name: &name})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAccountsService_Delete(t *testing.T) {
	repo := newStubAccountsRepo(&models.Account{ID: "a1"})
	valuator, _ := newTestValuator(nil)
	svc := NewAccountsService(repo, valuator)

	if err := svc.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(svc.Delete(context.Background(), "a1"), storage.ErrNotFound) {
		t.Fatalf("second delete must report not found")
	}
}

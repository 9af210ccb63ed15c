package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pmarinho/fintrack/internal/domain/models"
)

func newMockAccountsRepo(t *testing.T) (*accountsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return &accountsRepository{db: db}, mock, func() { _ = db.Close() }
}

func accountRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRows([]string{
		"id", "name", "description", "balance", "currency",
		"account_type", "account_number", "is_active", "last_updated",
	})
}

func TestAccountsRepository_Insert(t *testing.T) {
	repo, mock, done := newMockAccountsRepo(t)
	defer done()

	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs("a1", "Checking", nil, "1200.50", "EUR", "bank", nil, true, updated).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(&models.Account{
		ID:          "a1",
		Name:        "Checking",
		Balance:     1200.499999, // rounds to two decimals on the way in
		Currency:    "EUR",
		AccountType: models.AccountTypeBank,
		IsActive:    true,
		LastUpdated: updated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAccountsRepository_GetAll(t *testing.T) {
	repo, mock, done := newMockAccountsRepo(t)
	defer done()

	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := accountRow(mock).
		AddRow("a1", "Checking", "main", "1000.00", "EUR", "bank", "PT50", true, updated).
		AddRow("a2", "Wallet", nil, "0.50", "BTC", "crypto", nil, true, nil)
	mock.ExpectQuery(`SELECT .+ FROM accounts ORDER BY last_updated, id`).WillReturnRows(rows)

	accounts, err := repo.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Balance != 1000 || accounts[0].Description != "main" || accounts[0].AccountNumber != "PT50" {
		t.Fatalf("first account wrong: %+v", accounts[0])
	}
	if accounts[1].Balance != 0.5 || accounts[1].AccountType != models.AccountTypeCrypto {
		t.Fatalf("second account wrong: %+v", accounts[1])
	}
	if !accounts[1].LastUpdated.IsZero() {
		t.Fatalf("NULL last_updated must stay zero: %v", accounts[1].LastUpdated)
	}
}

func TestAccountsRepository_GetByID(t *testing.T) {
	repo, mock, done := newMockAccountsRepo(t)
	defer done()

	t.Run("found", func(t *testing.T) {
		rows := accountRow(mock).
			AddRow("a1", "Checking", nil, "1000.00", "EUR", "bank", nil, true, time.Now())
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
			WithArgs("a1").
			WillReturnRows(rows)

		acct, err := repo.GetByID("a1")
		if err != nil || acct.ID != "a1" {
			t.Fatalf("got %+v err %v", acct, err)
		}
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(accountRow(mock))

		_, err := repo.GetByID("ghost")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestAccountsRepository_Update(t *testing.T) {
	repo, mock, done := newMockAccountsRepo(t)
	defer done()

	acct := &models.Account{
		ID:          "a1",
		Name:        "Checking",
		Balance:     1500,
		Currency:    "EUR",
		AccountType: models.AccountTypeBank,
		IsActive:    true,
		LastUpdated: time.Now().UTC(),
	}

	t.Run("affected row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		if err := repo.Update(acct); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero rows maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		if err := repo.Update(acct); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestAccountsRepository_Delete(t *testing.T) {
	repo, mock, done := newMockAccountsRepo(t)
	defer done()

	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete("a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete("a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"

	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/storage"
	"github.com/pmarinho/fintrack/internal/valuation"
)

// In-memory repositories used across the service tests. They implement just
// enough of the storage contracts to observe what the services persist.

type stubAccountsRepo struct {
	order    []string
	accounts map[string]*models.Account
	inserted []*models.Account
	updated  []*models.Account
	deleted  []string
	failWith error
}

func newStubAccountsRepo(seed ...*models.Account) *stubAccountsRepo {
	r := &stubAccountsRepo{accounts: map[string]*models.Account{}}
	for _, a := range seed {
		cp := *a
		r.accounts[a.ID] = &cp
		r.order = append(r.order, a.ID)
	}
	return r
}

func (r *stubAccountsRepo) Insert(a *models.Account) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *a
	r.accounts[a.ID] = &cp
	r.order = append(r.order, a.ID)
	r.inserted = append(r.inserted, &cp)
	return nil
}

func (r *stubAccountsRepo) GetAll() ([]models.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]models.Account, 0, len(r.order))
	for _, id := range r.order {
		if a, ok := r.accounts[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAccountsRepo) GetByID(id string) (*models.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubAccountsRepo) Update(a *models.Account) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.accounts[a.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	r.updated = append(r.updated, &cp)
	return nil
}

func (r *stubAccountsRepo) Delete(id string) error {
	if _, ok := r.accounts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.accounts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var _ storage.AccountsRepository = (*stubAccountsRepo)(nil)

type stubRecordsRepo struct {
	records  []models.BalanceRecord
	inserted []*models.BalanceRecord
	deleted  []string
	failWith error
}

func (r *stubRecordsRepo) Insert(rec *models.BalanceRecord) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *rec
	r.records = append(r.records, cp)
	r.inserted = append(r.inserted, &cp)
	return nil
}

func (r *stubRecordsRepo) GetAll() ([]models.BalanceRecord, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return append([]models.BalanceRecord(nil), r.records...), nil
}

func (r *stubRecordsRepo) GetByAccountID(accountID string) ([]models.BalanceRecord, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.BalanceRecord
	for _, rec := range r.records {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubRecordsRepo) GetByID(id string) (*models.BalanceRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			cp := r.records[i]
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *stubRecordsRepo) Delete(id string) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return storage.ErrNotFound
}

var _ storage.BalanceRecordsRepository = (*stubRecordsRepo)(nil)

// fixedRateConverter multiplies by a fixed EUR rate per unit symbol.
type fixedRateConverter struct {
	rates map[string]float64
	calls int
}

func (c *fixedRateConverter) ConvertToReference(_ context.Context, amount float64, unit string) (float64, error) {
	c.calls++
	rate, ok := c.rates[unit]
	if !ok {
		return 0, errors.New("price unavailable")
	}
	return amount * rate, nil
}

func newTestValuator(rates map[string]float64) (*valuation.Valuator, *fixedRateConverter) {
	conv := &fixedRateConverter{rates: rates}
	return valuation.NewValuator(conv, false), conv
}

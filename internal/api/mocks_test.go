package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Function-backed service fakes; unset functions panic, which makes an
// unexpected call an immediate test failure.

type fakeAccountsService struct {
	create func(ctx context.Context, req dto.CreateAccountRequest) (*models.Account, error)
	list   func(ctx context.Context) ([]dto.AccountResponse, error)
	get    func(ctx context.Context, id string) (*models.Account, error)
	update func(ctx context.Context, id string, req dto.UpdateAccountRequest) (*models.Account, error)
	delete func(ctx context.Context, id string) error
}

func (f *fakeAccountsService) Create(ctx context.Context, req dto.CreateAccountRequest) (*models.Account, error) {
	return f.create(ctx, req)
}

func (f *fakeAccountsService) List(ctx context.Context) ([]dto.AccountResponse, error) {
	return f.list(ctx)
}

func (f *fakeAccountsService) Get(ctx context.Context, id string) (*models.Account, error) {
	return f.get(ctx, id)
}

func (f *fakeAccountsService) Update(ctx context.Context, id string, req dto.UpdateAccountRequest) (*models.Account, error) {
	return f.update(ctx, id, req)
}

func (f *fakeAccountsService) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakeBalanceRecordsService struct {
	create        func(ctx context.Context, req dto.CreateBalanceRecordRequest) (*dto.BalanceRecordResponse, error)
	list          func(ctx context.Context) ([]dto.BalanceRecordResponse, error)
	listByAccount func(ctx context.Context, accountID string) ([]dto.BalanceRecordResponse, error)
	timeline      func(ctx context.Context) ([]dto.TimelinePoint, error)
	delete        func(ctx context.Context, id string) error
}

func (f *fakeBalanceRecordsService) Create(ctx context.Context, req dto.CreateBalanceRecordRequest) (*dto.BalanceRecordResponse, error) {
	return f.create(ctx, req)
}

func (f *fakeBalanceRecordsService) List(ctx context.Context) ([]dto.BalanceRecordResponse, error) {
	return f.list(ctx)
}

func (f *fakeBalanceRecordsService) ListByAccount(ctx context.Context, accountID string) ([]dto.BalanceRecordResponse, error) {
	return f.listByAccount(ctx, accountID)
}

func (f *fakeBalanceRecordsService) Timeline(ctx context.Context) ([]dto.TimelinePoint, error) {
	return f.timeline(ctx)
}

func (f *fakeBalanceRecordsService) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakeStatsService struct {
	compute func(ctx context.Context) (*models.StatsSnapshot, error)
}

func (f *fakeStatsService) Compute(ctx context.Context) (*models.StatsSnapshot, error) {
	return f.compute(ctx)
}

type fakeTransactionsService struct {
	list func(ctx context.Context) ([]dto.TransactionResponse, error)
}

func (f *fakeTransactionsService) List(ctx context.Context) ([]dto.TransactionResponse, error) {
	return f.list(ctx)
}

type fakeTagsService struct {
	create func(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error)
	list   func(ctx context.Context) ([]models.Tag, error)
	update func(ctx context.Context, id int64, req dto.UpdateTagRequest) (*models.Tag, error)
	delete func(ctx context.Context, id int64) error
}

func (f *fakeTagsService) Create(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	return f.create(ctx, req)
}

func (f *fakeTagsService) List(ctx context.Context) ([]models.Tag, error) {
	return f.list(ctx)
}

func (f *fakeTagsService) Update(ctx context.Context, id int64, req dto.UpdateTagRequest) (*models.Tag, error) {
	return f.update(ctx, id, req)
}

func (f *fakeTagsService) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

type fakeTicker struct {
	current func(ctx context.Context, symbol string) (models.PriceQuote, error)
	stats   func(ctx context.Context, symbol string) (models.PriceQuote, error)
	multi   func(ctx context.Context, symbols []string) ([]models.PriceQuote, error)
}

func (f *fakeTicker) GetCurrentPrice(ctx context.Context, symbol string) (models.PriceQuote, error) {
	return f.current(ctx, symbol)
}

func (f *fakeTicker) Get24hrStats(ctx context.Context, symbol string) (models.PriceQuote, error) {
	return f.stats(ctx, symbol)
}

func (f *fakeTicker) GetMultiplePrices(ctx context.Context, symbols []string) ([]models.PriceQuote, error) {
	return f.multi(ctx, symbols)
}

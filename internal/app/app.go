package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/config"
	"github.com/pmarinho/fintrack/internal/api"
	"github.com/pmarinho/fintrack/internal/currency"
	"github.com/pmarinho/fintrack/internal/service"
	"github.com/pmarinho/fintrack/internal/storage"
	"github.com/pmarinho/fintrack/internal/ticker"
	"github.com/pmarinho/fintrack/internal/valuation"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds the ticker client, converter, and valuator for the valuation
//     pipeline (rate caching per config).
//   - Initializes the repository and service layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Valuation pipeline: ticker -> converter -> valuator
	tickerClient := tickerCtor(cfg)
	var cache currency.RateCache
	if cfg.Ticker.CacheTTL > 0 {
		cache = currency.NewTTLCache(cfg.Ticker.CacheTTL)
	}
	converter := currency.NewConverter(tickerClient, cache)
	valuator := valuation.NewValuator(converter, cfg.Ticker.ConvertAll)

	// Repository layer (responsible for DB access)
	accountsRepo := storage.NewAccountsRepository(db)
	recordsRepo := storage.NewBalanceRecordsRepository(db)
	transactionsRepo := storage.NewTransactionsRepository(db)
	tagsRepo := storage.NewTagsRepository(db)

	// Service layer (business logic)
	accountsSvc := service.NewAccountsService(accountsRepo, valuator)
	recordsSvc := service.NewBalanceRecordsService(recordsRepo, accountsRepo, valuator)
	statsSvc := service.NewStatsService(accountsRepo, recordsRepo)
	transactionsSvc := service.NewTransactionsService(transactionsRepo)
	tagsSvc := service.NewTagsService(tagsRepo)

	// HTTP handler layer (business logic to HTTP mapping)
	accountsHandler := api.NewAccountsHandler(accountsSvc)
	recordsHandler := api.NewBalanceRecordsHandler(recordsSvc)
	miscHandler := api.NewMiscHandler(statsSvc, transactionsSvc, tagsSvc, tickerClient)

	// Setup Gin router with routes
	router := api.NewRouter(accountsHandler, recordsHandler, miscHandler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// tickerCtor is an indirection for building the ticker client; tests can
// override it to avoid real network calls.
var tickerCtor = func(cfg config.Config) ticker.Client {
	return ticker.NewHTTPClient(cfg.Ticker.APIURL, cfg.Ticker.Timeout)
}

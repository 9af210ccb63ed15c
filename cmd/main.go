package main

//
//  @title           fintrack API
//  @version         1.0
//  @description     Personal finance tracker: accounts, balance snapshots, imported transactions, and EUR-normalized views.
//  @termsOfService  https://github.com/pmarinho/fintrack
//  @contact.name    API Support
//  @contact.url     https://github.com/pmarinho/fintrack
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        accounts
//  @tag.description Account management and EUR-normalized listings
//
//  @tag.name        balance-records
//  @tag.description Balance snapshots and the normalized timeline
//
//  @tag.name        transactions
//  @tag.description Imported bank-statement rows
//
//  @tag.name        tags
//  @tag.description Transaction tags
//
//  @tag.name        stats
//  @tag.description Summary statistics
//
//  @tag.name        prices
//  @tag.description Raw ticker passthrough
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmarinho/fintrack/config"
	_ "github.com/pmarinho/fintrack/docs" // swagger docs
	"github.com/pmarinho/fintrack/internal/app"
	"github.com/pmarinho/fintrack/internal/ingestion"
	"github.com/pmarinho/fintrack/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the fintrack application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API serving accounts, balance records,
//     transactions, tags, stats, and the normalized timeline.
//   - import: Imports bank-statement .csv files from a directory.
//
// Flags:
//   - --mode: Execution mode ("api" or "import"). Default: "api".
//   - --dir:  Directory containing .csv statement files. Default: "./data/import".
//   - --parallel: How many files to import concurrently (0=auto up to CPU, max 8).
//   - --force: Re-import files already present in the import log.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or import")
	dir := flag.String("dir", "./data/import", "Directory with .csv statement files")
	parallel := flag.Int("parallel", 0, "How many files to import concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Re-import files already present in the import log")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "import":
		// Import mode: parse statement files and persist transactions
		logger.L().Info().Msg("running statement import")

		// Direct DB connection for the importer
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ImportDirectory(ctx, *dir, db, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("import failed")
		}
		logger.L().Info().Msg("import completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

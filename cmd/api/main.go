// Command api is the Marsden CC club data API server.
//
// Usage:
//
//	clubdata-api
//	API_PORT=8080 clubdata-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/marsdencc/clubdata/internal/api"
	"github.com/marsdencc/clubdata/internal/auth"
	"github.com/marsdencc/clubdata/internal/browser"
	"github.com/marsdencc/clubdata/internal/cache"
	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/db"
	"github.com/marsdencc/clubdata/internal/docstore"
	"github.com/marsdencc/clubdata/internal/fixtures"
	"github.com/marsdencc/clubdata/internal/ladder"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Document stores: file mirror always, Postgres when configured.
	mirror := docstore.NewFileStore(cfg.DataDir)

	var pool *db.Pool
	var database docstore.Store
	if cfg.HasDatabase() {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		database = docstore.NewPGStore(pool)
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("No DATABASE_URL set; running file-only")
	}

	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	fetcher := &browser.ChromeFetcher{
		NavigationTimeout: cfg.NavigationTimeout,
		SelectorTimeout:   cfg.SelectorTimeout,
		SettleDelay:       cfg.SettleDelay,
		Logger:            logger,
	}

	deps := api.Deps{
		Scraper:  ladder.NewScraper(cfg, fetcher, mirror, logger),
		Importer: fixtures.NewImporter(database, mirror, logger),
		Mirror:   mirror,
		Cache:    appCache,
		Pool:     pool,
		Verifier: auth.StaticVerifier{Token: cfg.AdminToken},
	}
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_API_TOKEN not set; scrape and import endpoints will reject all requests")
	}

	router := api.NewRouter(deps, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // scrape trigger can take the full fetch budget
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Marsden CC Club Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

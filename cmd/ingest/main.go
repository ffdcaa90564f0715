// Command ingest is the club data ingestion CLI.
//
// Usage:
//
//	clubdata-ingest scrape
//	clubdata-ingest scrape --plain-http
//	clubdata-ingest import fixtures.csv
//	clubdata-ingest show standings
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/marsdencc/clubdata/internal/browser"
	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/db"
	"github.com/marsdencc/clubdata/internal/docstore"
	"github.com/marsdencc/clubdata/internal/fixtures"
	"github.com/marsdencc/clubdata/internal/ladder"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "clubdata-ingest",
		Short: "Marsden CC club data ingestion CLI",
	}

	root.AddCommand(scrapeCmd())
	root.AddCommand(importCmd())
	root.AddCommand(showCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	var plainHTTP bool
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the PlayHQ ladder once and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				var fetcher browser.Fetcher = &browser.ChromeFetcher{
					NavigationTimeout: cfg.NavigationTimeout,
					SelectorTimeout:   cfg.SelectorTimeout,
					SettleDelay:       cfg.SettleDelay,
					Logger:            logger,
				}
				if plainHTTP {
					fetcher = browser.NewHTTPFetcher(logger)
				}

				scraper := ladder.NewScraper(cfg, fetcher, docstore.NewFileStore(cfg.DataDir), logger)
				start := time.Now()
				outcome := scraper.Run(ctx)
				logger.Info("Scrape finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"records_found", outcome.RecordsFound,
					"from_cache", outcome.FromCache)
				if outcome.Err != nil && outcome.Result == nil {
					return fmt.Errorf("scrape failed: %w", outcome.Err)
				}
				if outcome.Err != nil {
					logger.Warn("Fetch failed; last persisted standings still valid", "error", outcome.Err)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&plainHTTP, "plain-http", false, "Fetch with a plain GET instead of headless Chrome")
	return cmd
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <fixtures.csv>",
		Short: "Import a PlayHQ fixture export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open export: %w", err)
				}
				defer f.Close()

				set, err := fixtures.ImportCSV(f, logger)
				if err != nil {
					return fmt.Errorf("parse export: %w", err)
				}

				importer := fixtures.NewImporter(databaseStore(ctx, cfg), docstore.NewFileStore(cfg.DataDir), logger)
				persisted, err := importer.Persist(ctx, set)
				if err != nil {
					return fmt.Errorf("persist fixtures: %w", err)
				}
				logger.Info("Import finished",
					"matches", set.TotalMatches,
					"database", persisted.Database,
					"file", persisted.File)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// show command
// --------------------------------------------------------------------------

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "show {standings|fixtures}",
		Short:     "Print the last persisted document",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{config.StandingsKey, config.FixturesKey},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				store := docstore.NewFileStore(cfg.DataDir)
				doc, ok, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no %s document persisted yet", args[0])
				}
				var pretty any
				if err := json.Unmarshal(doc, &pretty); err != nil {
					return fmt.Errorf("decode %s: %w", args[0], err)
				}
				out, _ := json.MarshalIndent(pretty, "", "  ")
				fmt.Println(string(out))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// databaseStore connects the Postgres document store when configured,
// returning nil for file-only runs.
func databaseStore(ctx context.Context, cfg *config.Config) docstore.Store {
	if !cfg.HasDatabase() {
		logger.Info("No DATABASE_URL set; persisting to file mirror only")
		return nil
	}
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Warn("Database unavailable; persisting to file mirror only", "error", err)
		return nil
	}
	return docstore.NewPGStore(pool)
}

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}

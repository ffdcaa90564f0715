package ladder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/marsdencc/clubdata/internal/browser"
	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/docstore"
)

// Scraper combines the fetch driver, the extractor, and the document store
// into one run, guaranteeing a well-formed non-empty result on every path
// that can produce one.
type Scraper struct {
	URL     string
	Grade   string
	Fetcher browser.Fetcher
	Store   docstore.Store
	Logger  *slog.Logger
}

// NewScraper wires a scraper against the configured ladder page.
func NewScraper(cfg *config.Config, fetcher browser.Fetcher, store docstore.Store, logger *slog.Logger) *Scraper {
	return &Scraper{
		URL:     cfg.LadderURL,
		Grade:   cfg.GradeLabel,
		Fetcher: fetcher,
		Store:   store,
		Logger:  logger,
	}
}

// Outcome is one scrape run's result.
//
// Err nil: Result is a fresh scrape (or fallback substitution), already
// persisted. Err set with Result non-nil: the fetch failed but the last
// persisted result was readable. Err set with Result nil: total failure.
type Outcome struct {
	Result       *ScrapeResult
	RecordsFound int
	FromCache    bool
	Duration     time.Duration
	Err          error
}

// Run executes one scrape. The fetch driver owns all hard timeouts; no
// outer deadline wraps the orchestration.
func (s *Scraper) Run(ctx context.Context) Outcome {
	start := time.Now()

	html, err := s.Fetcher.FetchRenderedPage(ctx, s.URL)
	if err != nil {
		s.Logger.Error("Ladder fetch failed", "url", s.URL, "error", err)
		return s.readBack(ctx, start, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.Logger.Error("Ladder snapshot unparseable", "error", err)
		return s.readBack(ctx, start, fmt.Errorf("parse snapshot: %w", err))
	}

	standings, attempted := ExtractStandings(doc)
	recordsFound := len(standings)
	s.Logger.Info("Ladder extraction finished",
		"rows_attempted", attempted, "rows_accepted", recordsFound)

	result := &ScrapeResult{
		Grade:        s.Grade,
		Standings:    standings,
		LastUpdated:  time.Now().UTC(),
		Source:       SourceScrape,
		RecordsFound: recordsFound,
	}
	if recordsFound == 0 {
		result.Standings = DefaultStandings()
		result.Source = SourceFallback
		result.Note = FallbackNote
	}

	if err := s.persist(ctx, result); err != nil {
		// Last-write-wins file/document store; a failed write keeps the
		// previous result visible, which is the fallback path anyway.
		s.Logger.Error("Failed to persist scrape result", "error", err)
	}

	return Outcome{
		Result:       result,
		RecordsFound: recordsFound,
		Duration:     time.Since(start),
	}
}

// readBack serves the last persisted result when fetching failed. Only this
// path skips persistence.
func (s *Scraper) readBack(ctx context.Context, start time.Time, cause error) Outcome {
	cached, ok, err := Load(ctx, s.Store)
	if err != nil {
		s.Logger.Error("Failed to read persisted standings", "error", err)
	}
	if !ok || cached == nil {
		return Outcome{Duration: time.Since(start), Err: cause}
	}
	s.Logger.Info("Serving last persisted standings",
		"source", cached.Source, "last_updated", cached.LastUpdated)
	return Outcome{
		Result:       cached,
		RecordsFound: cached.RecordsFound,
		FromCache:    true,
		Duration:     time.Since(start),
		Err:          cause,
	}
}

func (s *Scraper) persist(ctx context.Context, result *ScrapeResult) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal scrape result: %w", err)
	}
	return s.Store.Put(ctx, config.StandingsKey, doc)
}

// Load reads the last persisted ScrapeResult from the store.
func Load(ctx context.Context, store docstore.Store) (*ScrapeResult, bool, error) {
	doc, ok, err := store.Get(ctx, config.StandingsKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var result ScrapeResult
	if err := json.Unmarshal(doc, &result); err != nil {
		return nil, false, fmt.Errorf("decode persisted standings: %w", err)
	}
	return &result, true, nil
}

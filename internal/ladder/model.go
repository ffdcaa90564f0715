// Package ladder scrapes the club's league standings from the external
// PlayHQ ladder page and keeps a last-known-good copy in the document store.
//
// Extraction is best-effort: the page markup is owned by the provider and
// changes without notice, so the extractor works positionally and the
// pipeline falls back to a fixed default table rather than failing.
package ladder

import "time"

// Provenance tags recorded on every persisted result.
const (
	SourceScrape   = "PlayHQ Web Scrape (Puppeteer)"
	SourceFallback = "Default Fallback"
)

// FallbackNote is attached when live extraction found nothing and the
// default table was substituted.
const FallbackNote = "Live data unavailable; showing default table"

// StandingRow is one team's ladder position as displayed on the source page.
// Position follows display order; no re-sort by points is performed.
type StandingRow struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Points   int    `json:"points"`
	// NRR is kept as text because the source renders it pre-formatted
	// with an explicit sign (e.g. "+0.85").
	NRR string `json:"nrr"`
}

// ScrapeResult is the persisted document wrapping one extraction run.
// Standings is never empty; the fallback guarantees a six-row default.
type ScrapeResult struct {
	Grade        string        `json:"grade"`
	Standings    []StandingRow `json:"standings"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	Source       string        `json:"source"`
	RecordsFound int           `json:"recordsFound"`
	Note         string        `json:"note,omitempty"`
}

// DefaultStandings returns the fixed fallback table used whenever live
// extraction fails or yields nothing.
func DefaultStandings() []StandingRow {
	return []StandingRow{
		{Position: 1, Team: "Marsden CC", Played: 8, Wins: 6, Losses: 2, Points: 38, NRR: "+0.85"},
		{Position: 2, Team: "Lindfield Lions", Played: 8, Wins: 6, Losses: 2, Points: 36, NRR: "+0.62"},
		{Position: 3, Team: "Gordon Gazelles", Played: 8, Wins: 5, Losses: 3, Points: 31, NRR: "+0.28"},
		{Position: 4, Team: "Roseville Rangers", Played: 8, Wins: 4, Losses: 4, Points: 26, NRR: "-0.05"},
		{Position: 5, Team: "Chatswood Colts", Played: 8, Wins: 2, Losses: 6, Points: 15, NRR: "-0.47"},
		{Position: 6, Team: "Killara Knights", Played: 8, Wins: 1, Losses: 7, Points: 9, NRR: "-1.12"},
	}
}

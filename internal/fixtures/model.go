// Package fixtures imports PlayHQ fixture exports (CSV) into the document
// store and derives the display schedule the club site renders.
package fixtures

import "time"

// SourceCSVImport is the provenance tag on imported fixture sets.
const SourceCSVImport = "CSV Import (PlayHQ fixture export)"

// DefaultCategory is used when a row carries neither grade nor competition.
const DefaultCategory = "Club Cricket"

// Match statuses. Anything the export reports other than upcoming/live is
// treated as completed.
const (
	StatusUpcoming  = "UPCOMING"
	StatusLive      = "LIVE"
	StatusCompleted = "COMPLETED"
)

// TeamSide is one side of a fixture. Scores are always reset to zero on
// import; only the name is taken from the export. Batting cards are
// populated later by the scorekeeping flows.
type TeamSide struct {
	Name    string         `json:"name"`
	Score   int            `json:"score"`
	Wickets int            `json:"wickets"`
	Overs   string         `json:"overs"`
	Batting []BattingEntry `json:"batting"`
}

// BattingEntry is one batter's line in a scorecard.
type BattingEntry struct {
	Player string `json:"player"`
	Runs   int    `json:"runs"`
	Balls  int    `json:"balls"`
	Out    bool   `json:"out"`
}

// MatchFixture is one parsed fixture row.
type MatchFixture struct {
	ID       int    `json:"id"`
	GameCode string `json:"gameCode,omitempty"`
	GameID   string `json:"gameId,omitempty"`

	MatchName string `json:"matchName"`
	Category  string `json:"category"`

	// Date is the long display form ("January 18, 2026"); Time is the
	// 12-hour display form or "TBC". StartDateTime is deliberately unzoned
	// ("2026-01-18T13:30:00") so downstream display interprets it in the
	// viewer's local time; omitted when the export has no usable time.
	Date          string `json:"date"`
	Time          string `json:"time"`
	StartDateTime string `json:"startDateTime,omitempty"`

	Venue  string `json:"venue"`
	Status string `json:"status"`

	// Result stays empty at import time; other flows fill it in.
	Result string `json:"result"`

	Team1 TeamSide `json:"team1"`
	Team2 TeamSide `json:"team2"`
}

// FixtureSet is the persisted envelope: the whole imported batch plus
// provenance, overwritten wholesale on every import.
type FixtureSet struct {
	Matches      []MatchFixture `json:"matches"`
	LastUpdated  time.Time      `json:"lastUpdated"`
	Source       string         `json:"source"`
	TotalMatches int            `json:"totalMatches"`
}

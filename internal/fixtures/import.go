package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Export date/time layouts. Dates are strict DD/MM/YYYY; anything else
// drops the row. Times are 24-hour with optional seconds.
const (
	exportDateLayout = "02/01/2006"
	localDateTime    = "2006-01-02T15:04:05"
	displayDate      = "January 2, 2006"
	displayTime      = "3:04 PM"
)

var exportTimeLayouts = []string{"15:04", "15:04:05"}

// ImportCSV parses a PlayHQ fixture export and returns the derived fixture
// set. A malformed CSV structure aborts the whole import; rows with an
// unparseable date are dropped individually (skip reasons are logged, the
// caller only sees the aggregate count).
func ImportCSV(r io.Reader, logger *slog.Logger) (*FixtureSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse CSV: missing header row")
	}

	header := headerIndex(records[0])

	matches := make([]MatchFixture, 0, len(records)-1)
	for i, record := range records[1:] {
		if blankRow(record) {
			continue
		}
		row := rowReader{header: header, record: record}
		match, err := parseFixture(row, len(matches)+1)
		if err != nil {
			logger.Warn("Skipping fixture row", "row", i+2, "reason", err)
			continue
		}
		matches = append(matches, match)
	}

	logger.Info("Fixture import parsed", "rows", len(records)-1, "matches", len(matches))

	return &FixtureSet{
		Matches:      matches,
		LastUpdated:  time.Now().UTC(),
		Source:       SourceCSVImport,
		TotalMatches: len(matches),
	}, nil
}

// parseFixture derives one MatchFixture from an export row. The returned
// error is a skip reason, not a fatal condition.
func parseFixture(row rowReader, id int) (MatchFixture, error) {
	gameDate, err := time.Parse(exportDateLayout, row.get("game date"))
	if err != nil {
		return MatchFixture{}, fmt.Errorf("bad game date %q", row.get("game date"))
	}

	match := MatchFixture{
		ID:       id,
		GameCode: row.get("game code"),
		GameID:   row.get("game id"),
		Date:     gameDate.Format(displayDate),
		Time:     "TBC",
		Status:   mapStatus(row.get("status")),
		Result:   "",
	}

	home := row.get("home team")
	away := row.get("away team")
	switch {
	case home != "" && away != "":
		match.MatchName = fmt.Sprintf("%s vs %s", home, away)
	case row.get("match name") != "":
		match.MatchName = row.get("match name")
	default:
		match.MatchName = fmt.Sprintf("Match %d", id)
	}

	match.Category = DefaultCategory
	if grade := row.get("grade"); grade != "" {
		match.Category = grade
	} else if comp := row.get("competition"); comp != "" {
		match.Category = comp
	}

	if t, ok := parseExportTime(row.get("time")); ok {
		match.Time = t.Format(displayTime)
		start := time.Date(gameDate.Year(), gameDate.Month(), gameDate.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		match.StartDateTime = start.Format(localDateTime)
	}

	venue := row.get("venue")
	surface := row.get("playing surface")
	switch {
	case venue != "" && surface != "":
		match.Venue = venue + " / " + surface
	case venue != "":
		match.Venue = venue
	case surface != "":
		match.Venue = surface
	default:
		match.Venue = "TBC"
	}

	match.Team1 = newTeamSide(home)
	match.Team2 = newTeamSide(away)

	return match, nil
}

func newTeamSide(name string) TeamSide {
	return TeamSide{Name: name, Overs: "0.0", Batting: []BattingEntry{}}
}

func parseExportTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range exportTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mapStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming":
		return StatusUpcoming
	case "live":
		return StatusLive
	default:
		return StatusCompleted
	}
}

// --------------------------------------------------------------------------
// Header-driven row access
// --------------------------------------------------------------------------

// headerIndex maps trimmed, lower-cased column names to their positions.
func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return m
}

type rowReader struct {
	header map[string]int
	record []string
}

func (r rowReader) get(name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func blankRow(record []string) bool {
	return strings.TrimSpace(strings.Join(record, "")) == ""
}

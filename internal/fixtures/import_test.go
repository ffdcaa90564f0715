package fixtures

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const exportHeader = "Game Code,Game ID,Home Team,Away Team,Grade,Competition,Game Date,Time,Venue,Playing Surface,Status\n"

func importRows(t *testing.T, rows ...string) *FixtureSet {
	t.Helper()
	set, err := ImportCSV(strings.NewReader(exportHeader+strings.Join(rows, "\n")), testLogger())
	require.NoError(t, err)
	return set
}

func TestImportCSV_FullRow(t *testing.T) {
	set := importRows(t,
		"GC100,G-1,Marsden CC,Lindfield Lions,B2 Grade,,18/01/2026,13:30,Marsden Oval,North Pitch,Upcoming")

	require.Equal(t, 1, set.TotalMatches)
	require.Equal(t, SourceCSVImport, set.Source)

	m := set.Matches[0]
	require.Equal(t, 1, m.ID)
	require.Equal(t, "GC100", m.GameCode)
	require.Equal(t, "G-1", m.GameID)
	require.Equal(t, "Marsden CC vs Lindfield Lions", m.MatchName)
	require.Equal(t, "B2 Grade", m.Category)
	require.Equal(t, "January 18, 2026", m.Date)
	require.Equal(t, "1:30 PM", m.Time)
	require.Equal(t, "2026-01-18T13:30:00", m.StartDateTime)
	require.Equal(t, "Marsden Oval / North Pitch", m.Venue)
	require.Equal(t, StatusUpcoming, m.Status)
	require.Empty(t, m.Result)

	// Scores always reset to zero on import.
	require.Equal(t, TeamSide{Name: "Marsden CC", Overs: "0.0", Batting: []BattingEntry{}}, m.Team1)
	require.Equal(t, "Lindfield Lions", m.Team2.Name)
	require.Zero(t, m.Team2.Score)
	require.Zero(t, m.Team2.Wickets)
}

func TestImportCSV_BadDateDropsRow(t *testing.T) {
	set := importRows(t,
		",,A,B,,,18/01/2026,10:00,,,Upcoming",
		",,C,D,,,31/02/2026,10:00,,,Upcoming", // invalid calendar date
		",,E,F,,,25/01/2026,10:00,,,Upcoming",
		",,G,H,,,not a date,10:00,,,Upcoming",
		",,I,J,,,01/02/2026,10:00,,,Upcoming")

	require.Equal(t, 3, set.TotalMatches)
	require.Len(t, set.Matches, 3)
	// IDs stay sequential over accepted rows only.
	for i, m := range set.Matches {
		require.Equal(t, i+1, m.ID)
	}
}

func TestImportCSV_MissingTime(t *testing.T) {
	set := importRows(t, ",,A,B,,,18/01/2026,,,,Upcoming")

	m := set.Matches[0]
	require.Equal(t, "TBC", m.Time)
	require.Empty(t, m.StartDateTime)
}

func TestImportCSV_MalformedTime(t *testing.T) {
	set := importRows(t, ",,A,B,,,18/01/2026,half past one,,,Upcoming")

	require.Equal(t, "TBC", set.Matches[0].Time)
	require.Empty(t, set.Matches[0].StartDateTime)
}

func TestImportCSV_TimeWithSeconds(t *testing.T) {
	set := importRows(t, ",,A,B,,,18/01/2026,09:05:30,,,Upcoming")

	require.Equal(t, "9:05 AM", set.Matches[0].Time)
	require.Equal(t, "2026-01-18T09:05:30", set.Matches[0].StartDateTime)
}

func TestImportCSV_StatusMapping(t *testing.T) {
	set := importRows(t,
		",,A,B,,,18/01/2026,,,,Upcoming",
		",,C,D,,,18/01/2026,,,,LIVE",
		",,E,F,,,18/01/2026,,,,Final",
		",,G,H,,,18/01/2026,,,,")

	require.Equal(t, StatusUpcoming, set.Matches[0].Status)
	require.Equal(t, StatusLive, set.Matches[1].Status)
	require.Equal(t, StatusCompleted, set.Matches[2].Status)
	require.Equal(t, StatusCompleted, set.Matches[3].Status)
}

func TestImportCSV_VenueDerivation(t *testing.T) {
	set := importRows(t,
		",,A,B,,,18/01/2026,,Marsden Oval,North Pitch,",
		",,C,D,,,18/01/2026,,Marsden Oval,,",
		",,E,F,,,18/01/2026,,,South Pitch,",
		",,G,H,,,18/01/2026,,,,")

	require.Equal(t, "Marsden Oval / North Pitch", set.Matches[0].Venue)
	require.Equal(t, "Marsden Oval", set.Matches[1].Venue)
	require.Equal(t, "South Pitch", set.Matches[2].Venue)
	require.Equal(t, "TBC", set.Matches[3].Venue)
}

func TestImportCSV_MatchNamePlaceholder(t *testing.T) {
	set := importRows(t,
		",,,,,,18/01/2026,,,,",
		",,A,,,,18/01/2026,,,,")

	require.Equal(t, "Match 1", set.Matches[0].MatchName)
	require.Equal(t, "Match 2", set.Matches[1].MatchName)
}

func TestImportCSV_MatchNameAlias(t *testing.T) {
	header := "Match Name,Home Team,Away Team,Game Date\n"
	set, err := ImportCSV(strings.NewReader(header+"Semi Final,,,18/01/2026"), testLogger())
	require.NoError(t, err)
	require.Equal(t, "Semi Final", set.Matches[0].MatchName)
}

func TestImportCSV_CategoryFallbacks(t *testing.T) {
	set := importRows(t,
		",,A,B,B2 Grade,Shires Cup,18/01/2026,,,,",
		",,C,D,,Shires Cup,18/01/2026,,,,",
		",,E,F,,,18/01/2026,,,,")

	require.Equal(t, "B2 Grade", set.Matches[0].Category)
	require.Equal(t, "Shires Cup", set.Matches[1].Category)
	require.Equal(t, DefaultCategory, set.Matches[2].Category)
}

func TestImportCSV_BlankLinesSkipped(t *testing.T) {
	set := importRows(t,
		",,A,B,,,18/01/2026,,,,",
		"",
		",,C,D,,,19/01/2026,,,,")

	require.Equal(t, 2, set.TotalMatches)
}

func TestImportCSV_MalformedStructureAborts(t *testing.T) {
	_, err := ImportCSV(strings.NewReader(exportHeader+`,,"unterminated,,,18/01/2026,,,,`), testLogger())
	require.Error(t, err)
}

func TestImportCSV_EmptyInputAborts(t *testing.T) {
	_, err := ImportCSV(strings.NewReader(""), testLogger())
	require.Error(t, err)
}

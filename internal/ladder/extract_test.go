package ladder

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractStandings_TableRows(t *testing.T) {
	doc := parseHTML(t, `
		<table>
			<thead><tr><th>Team</th><th>P</th><th>W</th><th>L</th><th>Pts</th><th>NRR</th></tr></thead>
			<tbody>
				<tr><td>Marsden CC</td><td>8</td><td>6</td><td>2</td><td>38</td><td>+0.85</td></tr>
				<tr><td>Lindfield Lions</td><td>8</td><td>6</td><td>2</td><td>36</td><td>+0.62</td></tr>
				<tr><td>Gordon Gazelles</td><td>8</td><td>5</td><td>3</td><td>31</td><td>-0.28</td></tr>
			</tbody>
		</table>`)

	rows, attempted := ExtractStandings(doc)
	require.Len(t, rows, 3)
	require.Equal(t, 3, attempted)

	require.Equal(t, StandingRow{
		Position: 1, Team: "Marsden CC", Played: 8, Wins: 6, Losses: 2, Points: 38, NRR: "+0.85",
	}, rows[0])

	// Positions follow display order exactly.
	for i, row := range rows {
		require.Equal(t, i+1, row.Position)
	}
	require.Equal(t, "Lindfield Lions", rows[1].Team)
	require.Equal(t, "-0.28", rows[2].NRR)
}

func TestExtractStandings_AriaGridFallback(t *testing.T) {
	doc := parseHTML(t, `
		<div role="grid">
			<div role="row">
				<span role="gridcell">Roseville Rangers</span>
				<span role="gridcell">8</span>
				<span role="gridcell">4</span>
				<span role="gridcell">4</span>
				<span role="gridcell">26</span>
				<span role="gridcell">-0.05</span>
			</div>
		</div>`)

	rows, _ := ExtractStandings(doc)
	require.Len(t, rows, 1)
	require.Equal(t, "Roseville Rangers", rows[0].Team)
	require.Equal(t, 26, rows[0].Points)
}

func TestExtractStandings_RejectsHeaderLikeRows(t *testing.T) {
	doc := parseHTML(t, `
		<table><tbody>
			<tr><td>Team</td><td>P</td><td>W</td><td>L</td><td>Pts</td></tr>
			<tr><td>POSITION</td><td>1</td><td>2</td><td>3</td><td>4</td></tr>
			<tr><td></td><td>8</td><td>6</td><td>2</td><td>38</td></tr>
			<tr><td>Totals</td><td>0</td><td>21</td><td>21</td><td>130</td></tr>
			<tr><td>Chatswood Colts</td><td>8</td><td>2</td><td>6</td><td>15</td></tr>
		</tbody></table>`)

	rows, attempted := ExtractStandings(doc)
	require.Equal(t, 5, attempted)
	require.Len(t, rows, 1)
	require.Equal(t, "Chatswood Colts", rows[0].Team)
	require.Equal(t, 1, rows[0].Position)
	require.True(t, rows[0].Played > 0)
}

func TestExtractStandings_TooFewCellsYieldsNothing(t *testing.T) {
	doc := parseHTML(t, `
		<table><tbody>
			<tr><td>Marsden CC</td><td>8</td><td>6</td></tr>
			<tr><td>Lindfield Lions</td><td>8</td><td>6</td></tr>
		</tbody></table>`)

	rows, attempted := ExtractStandings(doc)
	require.Empty(t, rows)
	require.Equal(t, 2, attempted)
}

func TestExtractStandings_DefaultsAndWhitespace(t *testing.T) {
	doc := parseHTML(t, `
		<table><tbody>
			<tr><td>  Killara
			Knights </td><td>8</td><td>1</td><td>7</td><td>9</td></tr>
		</tbody></table>`)

	rows, _ := ExtractStandings(doc)
	require.Len(t, rows, 1)
	// Newlines collapse to single spaces; a missing NRR cell defaults.
	require.Equal(t, "Killara Knights", rows[0].Team)
	require.Equal(t, "0.00", rows[0].NRR)
}

func TestExtractStandings_NonNumericCellsParseAsZero(t *testing.T) {
	doc := parseHTML(t, `
		<table><tbody>
			<tr><td>Marsden CC</td><td>8</td><td>W</td><td>-</td><td>38</td><td>+0.85</td></tr>
		</tbody></table>`)

	rows, _ := ExtractStandings(doc)
	require.Len(t, rows, 1)
	require.Equal(t, 0, rows[0].Wins)
	require.Equal(t, 0, rows[0].Losses)
	require.Equal(t, 38, rows[0].Points)
}

package ladder

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractStandings pulls standing rows out of a rendered ladder page.
// It is a pure function over a parsed snapshot so it can be tested without
// a browser.
//
// Candidate rows are found by the first strategy that yields anything:
//
//  1. <tr> inside any <tbody>
//  2. elements with role="row"
//  3. <tr> inside the first <table>
//
// Returns the accepted rows and the number of candidate rows attempted.
// An empty result means the caller should substitute the fallback table.
func ExtractStandings(doc *goquery.Document) ([]StandingRow, int) {
	rows := doc.Find("tbody tr")
	if rows.Length() == 0 {
		rows = doc.Find(`[role="row"]`)
	}
	if rows.Length() == 0 {
		rows = doc.Find("table").First().Find("tr")
	}

	var standings []StandingRow
	position := 0

	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			cells = row.Find(`[role="gridcell"]`)
		}
		// Ladder rows carry at least team, played, wins, losses, points.
		if cells.Length() < 5 {
			return
		}

		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, cellText(cell))
		})

		team := texts[0]
		if team == "" || strings.EqualFold(team, "team") || strings.EqualFold(team, "position") {
			return
		}

		played := cellInt(texts, 1)
		if played <= 0 {
			// Totals or header row masquerading as a body row.
			return
		}

		position++
		standings = append(standings, StandingRow{
			Position: position,
			Team:     team,
			Played:   played,
			Wins:     cellInt(texts, 2),
			Losses:   cellInt(texts, 3),
			Points:   cellInt(texts, 4),
			NRR:      cellString(texts, 5, "0.00"),
		})
	})

	return standings, rows.Length()
}

// cellText trims a cell and collapses internal newlines to spaces.
func cellText(cell *goquery.Selection) string {
	text := strings.TrimSpace(cell.Text())
	fields := strings.Fields(text)
	return strings.Join(fields, " ")
}

// cellInt parses texts[i] as an integer; missing or non-numeric yields 0.
func cellInt(texts []string, i int) int {
	if i >= len(texts) {
		return 0
	}
	n, err := strconv.Atoi(texts[i])
	if err != nil {
		return 0
	}
	return n
}

func cellString(texts []string, i int, fallback string) string {
	if i >= len(texts) || texts[i] == "" {
		return fallback
	}
	return texts[i]
}

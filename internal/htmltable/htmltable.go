// Package htmltable extracts tabular rows out of bank "xls" exports, which
// are HTML documents rather than spreadsheets. The markup is rarely
// well-formed, so extraction runs on the tolerant x/net/html parser.
package htmltable

import (
	"fmt"
	"strings"

	"ybarda/heshbon/internal/dateutils"
	"ybarda/heshbon/internal/textutils"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// headerScanWindow limits how deep the header search goes. Real exports put
// the header within the first few rows; everything above it is letterhead.
const headerScanWindow = 20

// positionalScanWindow limits the search for the first data row when no
// header row was found.
const positionalScanWindow = 10

// HeaderDateKeyword is the column heading that anchors header detection.
const HeaderDateKeyword = "תאריך"

// valueDateKeyword distinguishes the value-date column, which duplicates the
// booking date and must not win the date role.
const valueDateKeyword = "ערך"

// Layout maps column roles to cell indices. An index of -1 means the role
// was not found.
type Layout struct {
	Date           int
	Description    int
	ExtDescription int
	Debit          int
	Credit         int
	Reference      int
	Balance        int

	// DataStart is the index of the first data row in the extracted rows.
	DataStart int
	// Positional is true when no header row was found and the fixed
	// fallback layout is in effect.
	Positional bool
}

// Detect reports whether raw content looks like an HTML table export rather
// than a flat CSV.
func Detect(raw string) bool {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<table") || strings.Contains(lower, "<tr") || strings.Contains(lower, "<html") {
		return true
	}
	// Some exports drop the outer markup but keep entity-encoded headers.
	return strings.Contains(textutils.Clean(raw), HeaderDateKeyword) && strings.Contains(lower, "&#")
}

// Extract parses the markup and returns every table row as a slice of
// cleaned cell strings. Rows outside tables are ignored.
func Extract(raw string) ([][]string, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			rows = append(rows, extractCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(rows) == 0 {
		return nil, fmt.Errorf("no table rows found in markup")
	}
	return rows, nil
}

func extractCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, textutils.Sanitize(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// ResolveLayout finds the header row within the scan window and assigns
// column roles by keyword. When no header is present it falls back to the
// fixed positional layout and locates the first data row by its date-shaped
// first cell. Export layouts drift across file revisions; a missing header
// degrades the import, it must never fail it.
func ResolveLayout(rows [][]string) Layout {
	for i, row := range rows {
		if i >= headerScanWindow {
			break
		}
		if len(row) == 0 {
			continue
		}
		if isHeaderRow(row) {
			layout := resolveRoles(row)
			layout.DataStart = i + 1
			return layout
		}
	}
	return positionalLayout(rows)
}

// IsHeaderLookalike reports whether a data-region row repeats the column
// headings. Some exports re-print the header mid-table.
func IsHeaderLookalike(row []string) bool {
	return len(row) > 0 && isHeaderRow(row)
}

func isHeaderRow(row []string) bool {
	first := row[0]
	return first == HeaderDateKeyword ||
		(strings.Contains(first, HeaderDateKeyword) && !strings.Contains(first, valueDateKeyword))
}

func resolveRoles(header []string) Layout {
	layout := Layout{
		Date: -1, Description: -1, ExtDescription: -1,
		Debit: -1, Credit: -1, Reference: -1, Balance: -1,
	}
	for i, cell := range header {
		switch {
		case layout.Date < 0 && strings.Contains(cell, HeaderDateKeyword) && !strings.Contains(cell, valueDateKeyword):
			layout.Date = i
		case layout.ExtDescription < 0 && (strings.Contains(cell, "פירוט") || strings.Contains(cell, "מורחב")):
			layout.ExtDescription = i
		case layout.Description < 0 && (strings.Contains(cell, "תיאור") || strings.Contains(cell, "פעולה")):
			layout.Description = i
		case layout.Debit < 0 && strings.Contains(cell, "חובה"):
			layout.Debit = i
		case layout.Credit < 0 && strings.Contains(cell, "זכות"):
			layout.Credit = i
		case layout.Reference < 0 && strings.Contains(cell, "אסמכתא"):
			layout.Reference = i
		case layout.Balance < 0 && strings.Contains(cell, "יתרה"):
			layout.Balance = i
		}
	}
	return layout
}

func positionalLayout(rows [][]string) Layout {
	layout := Layout{
		Date:           0,
		Description:    2,
		Reference:      3,
		Debit:          4,
		Credit:         5,
		Balance:        6,
		ExtDescription: 7,
		Positional:     true,
		DataStart:      len(rows),
	}
	for i, row := range rows {
		if i >= positionalScanWindow {
			break
		}
		if len(row) > 0 && dateutils.LooksLikeDayFirst(row[0]) {
			layout.DataStart = i
			break
		}
	}
	return layout
}

// Package grid expands a row-span compressed HTML table into a rectangular
// matrix of text values, one explicit value per row and column.
package grid

import (
	"strconv"
	"strings"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

// PendingSpan is a value that must be echoed into the same column of the
// following rows until RowsRemaining reaches zero.
type PendingSpan struct {
	Text          string
	RowsRemaining int
}

// Stats counts where each emitted slot came from.
type Stats struct {
	Rows      int
	FromCells int
	FromSpans int
	Padded    int
}

// Reconstruct returns one width-wide row per input row, in input order.
func Reconstruct(rows []draft.RawRow, width int) [][]string {
	out, _ := ReconstructWithStats(rows, width)
	return out
}

// ReconstructWithStats is Reconstruct plus slot provenance counters.
//
// Span state is scoped to this call; a span declared in one row is consumed by
// the rows after it at the same column index, and spans that run past the end
// of the table are dropped silently.
func ReconstructWithStats(rows []draft.RawRow, width int) ([][]string, Stats) {
	stats := Stats{Rows: len(rows)}
	out := make([][]string, 0, len(rows))
	if width < 0 {
		width = 0
	}
	pending := make(map[int]*PendingSpan)

	for _, row := range rows {
		record := make([]string, 0, width)
		cursor := 0
		for col := 0; len(record) < width; col++ {
			if span, ok := pending[col]; ok && span.RowsRemaining > 0 {
				record = append(record, span.Text)
				span.RowsRemaining--
				if span.RowsRemaining == 0 {
					delete(pending, col)
				}
				stats.FromSpans++
				continue
			}
			if cursor < len(row) {
				cell := row[cursor]
				cursor++
				record = append(record, cell.Text)
				if cell.RowSpan > 1 {
					pending[col] = &PendingSpan{Text: cell.Text, RowsRemaining: cell.RowSpan - 1}
				}
				stats.FromCells++
				continue
			}
			record = append(record, "")
			stats.Padded++
		}
		out = append(out, record)
	}
	return out, stats
}

// ParseRowSpan converts a rowspan attribute value into a span count.
// Anything that is not a positive integer counts as 1 (no span).
func ParseRowSpan(attr string) int {
	n, err := strconv.Atoi(strings.TrimSpace(attr))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

func cells(texts ...string) draft.RawRow {
	row := make(draft.RawRow, 0, len(texts))
	for _, t := range texts {
		row = append(row, draft.RawCell{Text: t, RowSpan: 1})
	}
	return row
}

func TestReconstructWidthAndRowCount(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		cells("1960", "3", "Richie Lucas", "QB", "Penn State", ""),
		cells("1961", "3"),
		{},
		cells("1962", "5", "Ernie Davis", "HB", "Syracuse", "Traded", "surplus"),
	}

	got := Reconstruct(rows, draft.Width)
	require.Len(t, got, len(rows))
	for i, rec := range got {
		assert.Len(t, rec, draft.Width, "row %d", i)
	}
	assert.Equal(t, []string{"1962", "5", "Ernie Davis", "HB", "Syracuse", "Traded"}, got[3])
}

func TestReconstructPropagatesRowSpan(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "1983", RowSpan: 3}, {Text: "12", RowSpan: 1}, {Text: "Tony Hunter"}},
		cells("14", "Jim Kelly"),
		cells("27", "Darryl Talley"),
	}

	got := Reconstruct(rows, draft.Width)
	require.Len(t, got, 3)
	for _, rec := range got {
		assert.Equal(t, "1983", rec[0])
	}
	assert.Equal(t, "14", got[1][1])
	assert.Equal(t, "Jim Kelly", got[1][2])
	assert.Equal(t, "Darryl Talley", got[2][2])
}

func TestReconstructEndToEndExample(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "1983", RowSpan: 2}, {Text: "5", RowSpan: 1}, {Text: "Jim Kelly", RowSpan: 1}, {Text: "QB"}, {Text: "Miami"}, {Text: ""}},
		cells("8", "Player2", "LB", "Somewhere", ""),
	}

	got := Reconstruct(rows, draft.Width)
	recs := []draft.Record{draft.RecordFromFields(got[0]), draft.RecordFromFields(got[1])}
	assert.Equal(t, "1983", recs[0].Season)
	assert.Equal(t, "1983", recs[1].Season)
	assert.Equal(t, "8", recs[1].Pick)
	assert.Equal(t, "Player2", recs[1].Player)
}

func TestReconstructShortRowPadding(t *testing.T) {
	t.Parallel()

	got := Reconstruct([]draft.RawRow{cells("1970", "1", "O. J. Simpson")}, draft.Width)
	assert.Equal(t, []string{"1970", "1", "O. J. Simpson", "", "", ""}, got[0])
}

func TestReconstructSpanInMiddleColumn(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "1979"}, {Text: "1"}, {Text: "Tom Cousineau"}, {Text: "LB"}, {Text: "Ohio State", RowSpan: 2}, {Text: "a"}},
		cells("1979", "23", "Jerry Butler", "WR", "b"),
	}

	got := Reconstruct(rows, draft.Width)
	assert.Equal(t, []string{"1979", "23", "Jerry Butler", "WR", "Ohio State", "b"}, got[1])
}

func TestReconstructSpanOverrunIsIgnored(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "2020", RowSpan: 10}, {Text: "1"}},
		cells("2"),
	}

	got, stats := ReconstructWithStats(rows, draft.Width)
	require.Len(t, got, 2)
	assert.Equal(t, "2020", got[1][0])
	assert.Equal(t, "2", got[1][1])
	assert.Equal(t, 1, stats.FromSpans)
}

func TestReconstructSequentialSpansInSameColumn(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "A", RowSpan: 2}},
		{},
		{{Text: "B", RowSpan: 2}},
		{},
		{},
	}

	got := Reconstruct(rows, 1)
	assert.Equal(t, [][]string{{"A"}, {"A"}, {"B"}, {"B"}, {""}}, got)
}

func TestReconstructStateDoesNotLeakBetweenCalls(t *testing.T) {
	t.Parallel()

	first := []draft.RawRow{{{Text: "1983", RowSpan: 5}}}
	_ = Reconstruct(first, draft.Width)

	got := Reconstruct([]draft.RawRow{cells("1984", "1")}, draft.Width)
	assert.Equal(t, "1984", got[0][0])
}

func TestReconstructEmptyInput(t *testing.T) {
	t.Parallel()

	got, stats := ReconstructWithStats(nil, draft.Width)
	assert.Empty(t, got)
	assert.Equal(t, Stats{}, stats)
}

func TestReconstructStats(t *testing.T) {
	t.Parallel()

	rows := []draft.RawRow{
		{{Text: "1983", RowSpan: 2}, {Text: "12"}},
		cells("14"),
	}

	_, stats := ReconstructWithStats(rows, 3)
	assert.Equal(t, Stats{Rows: 2, FromCells: 3, FromSpans: 1, Padded: 2}, stats)
}

func TestParseRowSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"3", 3},
		{" 2 ", 2},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"2.5", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRowSpan(tt.in))
		})
	}
}

func TestMalformedSpanMatchesNoSpan(t *testing.T) {
	t.Parallel()

	malformed := []draft.RawRow{
		{{Text: "1983", RowSpan: ParseRowSpan("abc")}, {Text: "5"}},
		cells("1984", "8"),
	}
	plain := []draft.RawRow{
		cells("1983", "5"),
		cells("1984", "8"),
	}

	assert.Equal(t, Reconstruct(plain, draft.Width), Reconstruct(malformed, draft.Width))
}

package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordFromFields(t *testing.T) {
	t.Parallel()

	rec := RecordFromFields([]string{"1983", "14", "Jim Kelly", "QB", "Miami (FL)", "Hall of Fame"})
	assert.Equal(t, Record{
		Season:   "1983",
		Pick:     "14",
		Player:   "Jim Kelly",
		Position: "QB",
		College:  "Miami (FL)",
		Notes:    "Hall of Fame",
	}, rec)
	assert.Equal(t, []string{"1983", "14", "Jim Kelly", "QB", "Miami (FL)", "Hall of Fame"}, rec.Fields())
}

func TestRecordFromFieldsShortAndLong(t *testing.T) {
	t.Parallel()

	short := RecordFromFields([]string{"1983", "14"})
	assert.Equal(t, "14", short.Pick)
	assert.Empty(t, short.Player)
	assert.Len(t, short.Fields(), Width)

	long := RecordFromFields([]string{"a", "b", "c", "d", "e", "f", "g"})
	assert.Equal(t, "f", long.Notes)
	assert.Len(t, long.Values(), Width)
}

func TestTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", DefaultTable, false},
		{"picks_2024", "picks_2024", false},
		{"_private", "_private", false},
		{"1picks", "", true},
		{"picks; DROP TABLE x", "", true},
		{"schema.picks", "", true},
	}
	for _, tt := range tests {
		got, err := TableName(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTable, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

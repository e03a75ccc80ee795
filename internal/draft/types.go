package draft

import (
	"net/http"
	"time"
)

// Width is the number of semantic columns in a draft-pick table.
const Width = 6

// DefaultTable is the relational table the picks are written to.
const DefaultTable = "bills_first_round_picks"

// Column names in record order. These are the persisted column names.
var Columns = [Width]string{
	"season",
	"pick_overall",
	"player",
	"position",
	"college",
	"notes",
}

// Headings are the human-facing labels for Columns.
var Headings = [Width]string{
	"Season",
	"Pick",
	"Player",
	"Position",
	"College",
	"Notes",
}

// RawCell is one <td>/<th> as parsed from the source document.
// RowSpan is 1 when the cell does not span.
type RawCell struct {
	Text    string
	RowSpan int
}

// RawRow is one <tr> in source order.
type RawRow []RawCell

// Record is a single draft pick.
type Record struct {
	Season   string `json:"season"`
	Pick     string `json:"pick"`
	Player   string `json:"player"`
	Position string `json:"position"`
	College  string `json:"college"`
	Notes    string `json:"notes"`
}

// RecordFromFields maps a reconstructed grid row onto a Record. Missing
// trailing fields are left empty and extra fields are ignored.
func RecordFromFields(fields []string) Record {
	var f [Width]string
	copy(f[:], fields)
	return Record{
		Season:   f[0],
		Pick:     f[1],
		Player:   f[2],
		Position: f[3],
		College:  f[4],
		Notes:    f[5],
	}
}

// Fields returns the record values in Columns order.
func (r Record) Fields() []string {
	return []string{r.Season, r.Pick, r.Player, r.Position, r.College, r.Notes}
}

// Values is Fields as []any, handy for SQL argument lists.
func (r Record) Values() []any {
	return []any{r.Season, r.Pick, r.Player, r.Position, r.College, r.Notes}
}

// FetchRequest captures everything needed to fetch the source document.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// RefreshNotice is published after the store has been refreshed.
type RefreshNotice struct {
	RunID       string    `json:"run_id"`
	Table       string    `json:"table"`
	Rows        int       `json:"rows"`
	SourceURL   string    `json:"source_url"`
	ArchiveURI  string    `json:"archive_uri,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

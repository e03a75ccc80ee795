// Package extract locates the draft table in an HTML document and turns its
// rows into draft.RawRow values, leaving row-span expansion to package grid.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/grid"
)

// DefaultSelector matches Wikipedia's "wikitable sortable" tables.
const DefaultSelector = "table.wikitable.sortable"

// Options controls table selection and text normalization.
type Options struct {
	// Selector is a CSS selector for the target table.
	Selector string
	// Index picks among multiple matches.
	Index int
	// HeaderRows is the number of leading rows that are headings.
	HeaderRows int
	// ExpectedWidth, when positive, is the required heading cell count.
	ExpectedWidth int
	// StripReferences removes citation markers (<sup class="reference">).
	StripReferences bool
}

// Table is an extracted table with its header split off.
type Table struct {
	Header []string
	Rows   []draft.RawRow
}

// Extract parses r and returns the selected table.
func Extract(r io.Reader, opts Options) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("parse html: %w", err)
	}
	return FromDocument(doc, opts)
}

// FromDocument is Extract for an already parsed document.
func FromDocument(doc *goquery.Document, opts Options) (Table, error) {
	selector := opts.Selector
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	matches := doc.Find(selector)
	if opts.Index < 0 || opts.Index >= matches.Length() {
		return Table{}, fmt.Errorf("%w: selector %q index %d (%d matches)",
			draft.ErrTableNotFound, selector, opts.Index, matches.Length())
	}
	table := matches.Eq(opts.Index)
	if opts.StripReferences {
		table.Find("sup.reference").Remove()
	}

	var all []draft.RawRow
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		all = append(all, parseRow(tr))
	})

	headerRows := opts.HeaderRows
	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows > len(all) {
		headerRows = len(all)
	}

	out := Table{Rows: all[headerRows:]}
	if headerRows > 0 {
		out.Header = lo.Map(all[headerRows-1], func(cell draft.RawCell, _ int) string {
			return cell.Text
		})
	}
	if opts.ExpectedWidth > 0 && headerRows > 0 && len(out.Header) != opts.ExpectedWidth {
		return Table{}, fmt.Errorf("%w: header has %d cells, want %d",
			draft.ErrUnexpectedColumns, len(out.Header), opts.ExpectedWidth)
	}
	if out.Rows == nil {
		out.Rows = []draft.RawRow{}
	}
	return out, nil
}

func parseRow(tr *goquery.Selection) draft.RawRow {
	row := draft.RawRow{}
	tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		span, _ := cell.Attr("rowspan")
		row = append(row, draft.RawCell{
			Text:    CellText(cell),
			RowSpan: grid.ParseRowSpan(span),
		})
	})
	return row
}

// CellText joins the text nodes under sel with single spaces, collapsing
// whitespace runs and trimming the ends. Script and style content is skipped.
func CellText(sel *goquery.Selection) string {
	var parts []string
	collectText(sel, &parts)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			*parts = append(*parts, child.Text())
		case "script", "style", "#comment":
		default:
			collectText(child, parts)
		}
	})
}

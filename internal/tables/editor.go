package tables

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-confluence/document"
	"github.com/goliatone/go-confluence/internal/fragment"
	"github.com/goliatone/go-confluence/internal/storage"
)

const (
	headerTextLimit = 30
	previewColumns  = 5
)

var summaryTagPattern = regexp.MustCompile(`<[^>]+>`)

// Summary describes one table found in a page body.
type Summary struct {
	Index     int
	HeaderRow []string
	RowCount  int
	ColCount  int
	Preview   string
}

// Editor applies structural edits to the tables of a page body. Every edit
// rewrites only the row block of the addressed table and leaves each byte
// outside it untouched, so table attributes and body wrappers survive. An
// edit that fails returns the error and no body.
type Editor struct {
	parser   *storage.Parser
	renderer *storage.Renderer
	content  *fragment.Normalizer
}

func NewEditor(macros storage.MacroNames) *Editor {
	return &Editor{
		parser:   storage.NewParser(macros),
		renderer: storage.NewRenderer(macros),
		content:  fragment.NewNormalizer(macros),
	}
}

// List describes every table in body, in document order.
func (e *Editor) List(body string) ([]Summary, error) {
	regions := storage.TableRegions(body)
	summaries := make([]Summary, 0, len(regions))
	for i, region := range regions {
		rows, err := e.parser.ParseRows(region.Rows(body))
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		summaries = append(summaries, summarize(i, document.Table{Rows: rows}))
	}
	return summaries, nil
}

// InsertColumn adds a column to the addressed table ahead of position. Name
// fills header rows, defaultValue fills the rest.
func (e *Editor) InsertColumn(body string, table, position int, name, defaultValue, headerStyle string) (string, error) {
	return e.rewrite(body, table, func(t document.Table) (document.Table, error) {
		return InsertColumn(t, position, e.content.Inline(name), e.content.Inline(defaultValue), headerStyle)
	})
}

// DeleteColumn removes the column at position from the addressed table.
func (e *Editor) DeleteColumn(body string, table, position int) (string, error) {
	return e.rewrite(body, table, func(t document.Table) (document.Table, error) {
		return DeleteColumn(t, position)
	})
}

// UpdateCell rewrites one cell of the addressed table.
func (e *Editor) UpdateCell(body string, table, row, col int, content string, update CellUpdate) (string, error) {
	return e.rewrite(body, table, func(t document.Table) (document.Table, error) {
		return UpdateCell(t, row, col, e.content.Inline(content), update)
	})
}

// InsertRow adds a row to the addressed table ahead of position.
func (e *Editor) InsertRow(body string, table, position int, values []string, header bool, styles []CellStyle) (string, error) {
	return e.rewrite(body, table, func(t document.Table) (document.Table, error) {
		parsed := make([][]document.Node, len(values))
		for i, value := range values {
			parsed[i] = e.content.Inline(value)
		}
		return InsertRow(t, position, parsed, header, styles)
	})
}

// DeleteRow removes the addressed row from the addressed table.
func (e *Editor) DeleteRow(body string, table, row int) (string, error) {
	return e.rewrite(body, table, func(t document.Table) (document.Table, error) {
		return DeleteRow(t, row)
	})
}

func (e *Editor) rewrite(body string, table int, edit func(document.Table) (document.Table, error)) (string, error) {
	regions := storage.TableRegions(body)
	if table < 0 || table >= len(regions) {
		return "", &OutOfRangeError{Kind: "table", Index: table, Count: len(regions)}
	}
	region := regions[table]

	rows, err := e.parser.ParseRows(region.Rows(body))
	if err != nil {
		return "", fmt.Errorf("table %d: %w", table, err)
	}
	next, err := edit(document.Table{Rows: rows})
	if err != nil {
		return "", fmt.Errorf("table %d: %w", table, err)
	}
	rendered, err := e.renderer.RenderRows(next.Rows)
	if err != nil {
		return "", fmt.Errorf("table %d: %w", table, err)
	}
	return region.Splice(body, rendered), nil
}

func summarize(index int, t document.Table) Summary {
	summary := Summary{Index: index, RowCount: len(t.Rows), ColCount: Width(t)}
	if len(t.Rows) == 0 {
		return summary
	}

	for _, cell := range t.Rows[0].Cells {
		summary.HeaderRow = append(summary.HeaderRow, truncate(cellText(cell), headerTextLimit))
	}
	head := summary.HeaderRow
	if len(head) > previewColumns {
		head = head[:previewColumns]
	}
	summary.Preview = strings.Join(head, " | ")
	if len(summary.HeaderRow) > previewColumns {
		summary.Preview += "..."
	}
	return summary
}

func cellText(cell document.Cell) string {
	text := document.PlainText(cell.Content)
	text = summaryTagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(storage.UnescapeText(text))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package tables

import (
	"fmt"

	"github.com/goliatone/go-confluence/document"
	"github.com/goliatone/go-confluence/internal/storage"
)

// CellStyle carries optional presentation for one cell in an inserted row.
type CellStyle struct {
	Style     string
	Highlight string
}

// CellUpdate adjusts how UpdateCell rewrites the addressed cell. Zero-value
// fields leave the current attribute in place.
type CellUpdate struct {
	Append    bool
	Style     string
	Highlight string
}

// Width reports the number of visual columns in the first row, counting a
// spanned cell once per column it covers.
func Width(t document.Table) int {
	if len(t.Rows) == 0 {
		return 0
	}
	return rowWidth(t.Rows[0])
}

func rowWidth(row document.Row) int {
	total := 0
	for _, cell := range row.Cells {
		total += document.SpanOf(cell.ColSpan)
	}
	return total
}

// InsertColumn returns a copy of t with a new column spliced in ahead of
// position. Header rows receive the header content, data rows the value.
// The new cell inherits style and highlight from its left neighbor, with
// headerStyle overriding the style on header rows. A cell spanning across
// position leaves no single place to cut, so the edit fails.
func InsertColumn(t document.Table, position int, header, value []document.Node, headerStyle string) (document.Table, error) {
	width := Width(t)
	if position < 0 || position > width {
		return document.Table{}, &OutOfRangeError{Kind: "column position", Index: position, Count: width}
	}

	rows := make([]document.Row, len(t.Rows))
	for r, row := range t.Rows {
		idx, err := boundaryIndex(row, r, position)
		if err != nil {
			return document.Table{}, err
		}

		cell := document.Cell{ColSpan: 1, RowSpan: 1}
		if ref := referenceCell(row, idx); ref != nil {
			cell.Style = ref.Style
			cell.Highlight = ref.Highlight
		}
		if isHeaderRow(row) {
			cell.Header = true
			cell.Content = header
			if headerStyle != "" {
				cell.Style = headerStyle
			}
		} else {
			cell.Content = value
		}

		cells := make([]document.Cell, 0, len(row.Cells)+1)
		cells = append(cells, row.Cells[:idx]...)
		cells = append(cells, cell)
		cells = append(cells, row.Cells[idx:]...)
		rows[r] = document.Row{Cells: cells}
	}
	return document.Table{Rows: rows}, nil
}

// DeleteColumn returns a copy of t without the column at position. A span
// that covers more than the addressed column blocks the removal, whether it
// crosses into the column or extends out of it.
func DeleteColumn(t document.Table, position int) (document.Table, error) {
	width := Width(t)
	if position < 0 || position >= width {
		return document.Table{}, &OutOfRangeError{Kind: "column", Index: position, Count: width}
	}

	rows := make([]document.Row, len(t.Rows))
	for r, row := range t.Rows {
		idx, found, err := coveringIndex(row, r, position)
		if err != nil {
			return document.Table{}, err
		}
		if !found {
			rows[r] = row
			continue
		}

		cell := row.Cells[idx]
		if span := document.SpanOf(cell.ColSpan); span > 1 {
			return document.Table{}, &AmbiguousStructureError{
				Row:    r,
				Column: position,
				Reason: fmt.Sprintf("removing column %d would drop a cell spanning columns %d through %d", position, position, position+span-1),
			}
		}
		if span := document.SpanOf(cell.RowSpan); span > 1 {
			return document.Table{}, &AmbiguousStructureError{
				Row:    r,
				Column: position,
				Reason: fmt.Sprintf("the cell at column %d spans %d rows", position, span),
			}
		}

		cells := make([]document.Cell, 0, len(row.Cells)-1)
		cells = append(cells, row.Cells[:idx]...)
		cells = append(cells, row.Cells[idx+1:]...)
		rows[r] = document.Row{Cells: cells}
	}
	return document.Table{Rows: rows}, nil
}

// UpdateCell returns a copy of t with the cell at row, col rewritten. Append
// keeps the current content and adds the new content after it.
func UpdateCell(t document.Table, row, col int, content []document.Node, update CellUpdate) (document.Table, error) {
	if row < 0 || row >= len(t.Rows) {
		return document.Table{}, &OutOfRangeError{Kind: "row", Index: row, Count: len(t.Rows)}
	}
	if col < 0 || col >= len(t.Rows[row].Cells) {
		return document.Table{}, &OutOfRangeError{Kind: "column", Index: col, Count: len(t.Rows[row].Cells)}
	}

	highlight := ""
	if update.Highlight != "" {
		highlight = storage.NormalizeHighlight(update.Highlight)
		if highlight == "" {
			return document.Table{}, fmt.Errorf("%w: %q", ErrInvalidHighlight, update.Highlight)
		}
	}

	rows := cloneRows(t.Rows)
	cell := &rows[row].Cells[col]
	if update.Append {
		merged := make([]document.Node, 0, len(cell.Content)+len(content))
		merged = append(merged, cell.Content...)
		merged = append(merged, content...)
		cell.Content = merged
	} else {
		cell.Content = content
	}
	if update.Style != "" {
		cell.Style = update.Style
	}
	if highlight != "" {
		cell.Highlight = highlight
	}
	return document.Table{Rows: rows}, nil
}

// InsertRow returns a copy of t with a fresh row spliced in ahead of
// position. Values map to cells left to right and the row pads with empty
// cells out to the table width.
func InsertRow(t document.Table, position int, values [][]document.Node, header bool, styles []CellStyle) (document.Table, error) {
	if position < 0 || position > len(t.Rows) {
		return document.Table{}, &OutOfRangeError{Kind: "row position", Index: position, Count: len(t.Rows)}
	}

	width := Width(t)
	if len(values) > width {
		width = len(values)
	}

	cells := make([]document.Cell, 0, width)
	for i := 0; i < width; i++ {
		cell := document.Cell{Header: header, ColSpan: 1, RowSpan: 1}
		if i < len(values) {
			cell.Content = values[i]
		}
		if i < len(styles) {
			cell.Style = styles[i].Style
			if styles[i].Highlight != "" {
				hl := storage.NormalizeHighlight(styles[i].Highlight)
				if hl == "" {
					return document.Table{}, fmt.Errorf("%w: %q", ErrInvalidHighlight, styles[i].Highlight)
				}
				cell.Highlight = hl
			}
		}
		cells = append(cells, cell)
	}

	rows := make([]document.Row, 0, len(t.Rows)+1)
	rows = append(rows, t.Rows[:position]...)
	rows = append(rows, document.Row{Cells: cells})
	rows = append(rows, t.Rows[position:]...)
	return document.Table{Rows: rows}, nil
}

// DeleteRow returns a copy of t without the addressed row. A rowspan on the
// row reaches into the rows below it, so those rows would lose a column.
func DeleteRow(t document.Table, row int) (document.Table, error) {
	if row < 0 || row >= len(t.Rows) {
		return document.Table{}, &OutOfRangeError{Kind: "row", Index: row, Count: len(t.Rows)}
	}
	for c, cell := range t.Rows[row].Cells {
		if span := document.SpanOf(cell.RowSpan); span > 1 {
			return document.Table{}, &AmbiguousStructureError{
				Row:    row,
				Column: c,
				Reason: fmt.Sprintf("a rowspan of %d reaches into the rows below", span),
			}
		}
	}

	rows := make([]document.Row, 0, len(t.Rows)-1)
	rows = append(rows, t.Rows[:row]...)
	rows = append(rows, t.Rows[row+1:]...)
	return document.Table{Rows: rows}, nil
}

// boundaryIndex locates the cell index where column position begins. Rows
// narrower than position take the new cell at their end.
func boundaryIndex(row document.Row, rowIdx, position int) (int, error) {
	col := 0
	for idx, cell := range row.Cells {
		if col == position {
			return idx, nil
		}
		span := document.SpanOf(cell.ColSpan)
		if col+span > position {
			return 0, &AmbiguousStructureError{
				Row:    rowIdx,
				Column: position,
				Reason: fmt.Sprintf("a cell spanning columns %d through %d crosses position %d", col, col+span-1, position),
			}
		}
		col += span
	}
	return len(row.Cells), nil
}

// coveringIndex locates the cell whose span includes column position, or
// reports found=false for rows too narrow to reach it.
func coveringIndex(row document.Row, rowIdx, position int) (idx int, found bool, err error) {
	col := 0
	for i, cell := range row.Cells {
		span := document.SpanOf(cell.ColSpan)
		if col == position {
			return i, true, nil
		}
		if col < position && col+span > position {
			return 0, false, &AmbiguousStructureError{
				Row:    rowIdx,
				Column: position,
				Reason: fmt.Sprintf("a cell spanning columns %d through %d crosses position %d", col, col+span-1, position),
			}
		}
		col += span
	}
	return 0, false, nil
}

func referenceCell(row document.Row, idx int) *document.Cell {
	if len(row.Cells) == 0 {
		return nil
	}
	if idx > 0 {
		return &row.Cells[idx-1]
	}
	return &row.Cells[0]
}

func isHeaderRow(row document.Row) bool {
	return len(row.Cells) > 0 && row.Cells[0].Header
}

func cloneRows(rows []document.Row) []document.Row {
	out := make([]document.Row, len(rows))
	for i, row := range rows {
		cells := make([]document.Cell, len(row.Cells))
		copy(cells, row.Cells)
		out[i] = document.Row{Cells: cells}
	}
	return out
}

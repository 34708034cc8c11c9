package tablescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-confluence/pkg/interfaces"
)

const (
	updateCellMessageType   = "confluence.tables.update_cell"
	insertRowMessageType    = "confluence.tables.insert_row"
	insertColumnMessageType = "confluence.tables.insert_column"
	deleteRowMessageType    = "confluence.tables.delete_row"
	deleteColumnMessageType = "confluence.tables.delete_column"
)

func requireReference(errs validation.Errors, code, reference string) {
	if strings.TrimSpace(reference) == "" {
		errs["reference"] = validation.NewError(code, "reference is required")
	}
}

// UpdateCellCommand rewrites one cell of an addressed table. Row and Column
// count rendered positions from zero, header rows included.
type UpdateCellCommand struct {
	// Reference selects the page carrying the table.
	Reference string `json:"reference"`
	// Table addresses the table by document order, starting at zero.
	Table int `json:"table"`
	// Row addresses the row inside the table, starting at zero.
	Row int `json:"row"`
	// Column addresses the cell inside the row, starting at zero.
	Column int `json:"column"`
	// Content is the new cell content; markdown inline syntax is converted.
	Content string `json:"content"`
	// Append keeps the current content and adds Content after it.
	Append bool `json:"append,omitempty"`
	// Style sets an inline CSS style on the cell when non-empty.
	Style string `json:"style,omitempty"`
	// Highlight sets a named background highlight on the cell when non-empty.
	Highlight string `json:"highlight,omitempty"`
}

// Type implements command.Message.
func (UpdateCellCommand) Type() string { return updateCellMessageType }

// Validate ensures the reference is present and the cell address is usable.
func (cmd UpdateCellCommand) Validate() error {
	errs := validation.Errors{}
	requireReference(errs, "confluence.tables.update_cell.reference_required", cmd.Reference)
	if cmd.Table < 0 {
		errs["table"] = validation.NewError("confluence.tables.update_cell.table_invalid", "table index must not be negative")
	}
	if cmd.Row < 0 {
		errs["row"] = validation.NewError("confluence.tables.update_cell.row_invalid", "row index must not be negative")
	}
	if cmd.Column < 0 {
		errs["column"] = validation.NewError("confluence.tables.update_cell.column_invalid", "column index must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InsertRowCommand adds a row to an addressed table ahead of Position. A
// Position equal to the row count appends at the end.
type InsertRowCommand struct {
	// Reference selects the page carrying the table.
	Reference string `json:"reference"`
	// Table addresses the table by document order, starting at zero.
	Table int `json:"table"`
	// Position is the row index the new row is inserted before.
	Position int `json:"position"`
	// Values are the cell contents, one per column; markdown inline syntax is converted.
	Values []string `json:"values"`
	// Header renders the new row with header cells.
	Header bool `json:"header,omitempty"`
	// Styles optionally carries per-cell presentation, aligned with Values.
	Styles []interfaces.CellStyle `json:"styles,omitempty"`
}

// Type implements command.Message.
func (InsertRowCommand) Type() string { return insertRowMessageType }

// Validate ensures the reference, position, and cell values are usable.
func (cmd InsertRowCommand) Validate() error {
	errs := validation.Errors{}
	requireReference(errs, "confluence.tables.insert_row.reference_required", cmd.Reference)
	if cmd.Table < 0 {
		errs["table"] = validation.NewError("confluence.tables.insert_row.table_invalid", "table index must not be negative")
	}
	if cmd.Position < 0 {
		errs["position"] = validation.NewError("confluence.tables.insert_row.position_invalid", "position must not be negative")
	}
	if len(cmd.Values) == 0 {
		errs["values"] = validation.NewError("confluence.tables.insert_row.values_required", "at least one cell value is required")
	}
	if len(cmd.Styles) > 0 && len(cmd.Styles) != len(cmd.Values) {
		errs["styles"] = validation.NewError("confluence.tables.insert_row.styles_mismatch", "styles must align with values when provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// InsertColumnCommand adds a column to an addressed table ahead of Position.
// Name fills header rows, DefaultValue fills the remaining rows.
type InsertColumnCommand struct {
	// Reference selects the page carrying the table.
	Reference string `json:"reference"`
	// Table addresses the table by document order, starting at zero.
	Table int `json:"table"`
	// Position is the column index the new column is inserted before.
	Position int `json:"position"`
	// Name is the header cell content for the new column.
	Name string `json:"name,omitempty"`
	// DefaultValue fills the new column in non-header rows.
	DefaultValue string `json:"default_value,omitempty"`
	// HeaderStyle optionally styles the new header cell.
	HeaderStyle string `json:"header_style,omitempty"`
}

// Type implements command.Message.
func (InsertColumnCommand) Type() string { return insertColumnMessageType }

// Validate ensures the reference and position are usable.
func (cmd InsertColumnCommand) Validate() error {
	errs := validation.Errors{}
	requireReference(errs, "confluence.tables.insert_column.reference_required", cmd.Reference)
	if cmd.Table < 0 {
		errs["table"] = validation.NewError("confluence.tables.insert_column.table_invalid", "table index must not be negative")
	}
	if cmd.Position < 0 {
		errs["position"] = validation.NewError("confluence.tables.insert_column.position_invalid", "position must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteRowCommand removes one row from an addressed table.
type DeleteRowCommand struct {
	// Reference selects the page carrying the table.
	Reference string `json:"reference"`
	// Table addresses the table by document order, starting at zero.
	Table int `json:"table"`
	// Row addresses the row to remove, starting at zero.
	Row int `json:"row"`
}

// Type implements command.Message.
func (DeleteRowCommand) Type() string { return deleteRowMessageType }

// Validate ensures the reference and row address are usable.
func (cmd DeleteRowCommand) Validate() error {
	errs := validation.Errors{}
	requireReference(errs, "confluence.tables.delete_row.reference_required", cmd.Reference)
	if cmd.Table < 0 {
		errs["table"] = validation.NewError("confluence.tables.delete_row.table_invalid", "table index must not be negative")
	}
	if cmd.Row < 0 {
		errs["row"] = validation.NewError("confluence.tables.delete_row.row_invalid", "row index must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteColumnCommand removes one column from an addressed table.
type DeleteColumnCommand struct {
	// Reference selects the page carrying the table.
	Reference string `json:"reference"`
	// Table addresses the table by document order, starting at zero.
	Table int `json:"table"`
	// Column addresses the column to remove, starting at zero.
	Column int `json:"column"`
}

// Type implements command.Message.
func (DeleteColumnCommand) Type() string { return deleteColumnMessageType }

// Validate ensures the reference and column address are usable.
func (cmd DeleteColumnCommand) Validate() error {
	errs := validation.Errors{}
	requireReference(errs, "confluence.tables.delete_column.reference_required", cmd.Reference)
	if cmd.Table < 0 {
		errs["table"] = validation.NewError("confluence.tables.delete_column.table_invalid", "table index must not be negative")
	}
	if cmd.Column < 0 {
		errs["column"] = validation.NewError("confluence.tables.delete_column.column_invalid", "column index must not be negative")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

package interfaces

import "context"

// PatchResult reports one applied body patch. Matches counts how often the
// old fragment occurred; only the first occurrence was replaced.
type PatchResult struct {
	PageID  string
	Title   string
	Version int
	WebURL  string
	Matches int
}

// TableEditResult reports one structural table edit written back to a page.
type TableEditResult struct {
	PageID  string
	Title   string
	Version int
	WebURL  string
}

// TableSummary describes one table found on a page, in document order.
type TableSummary struct {
	Index     int
	HeaderRow []string
	RowCount  int
	ColCount  int
	Preview   string
}

// CellUpdate adjusts how a cell update rewrites the addressed cell.
// Zero-value fields leave the current attribute in place.
type CellUpdate struct {
	Append    bool
	Style     string
	Highlight string
}

// CellStyle carries optional presentation for one cell in an inserted row.
type CellStyle struct {
	Style     string
	Highlight string
}

// AttachmentResult reports one file uploaded to a page.
type AttachmentResult struct {
	PageID    string
	ID        string
	Title     string
	MediaType string
}

// PageEditor applies targeted edits to live pages. Implementations resolve
// the page reference, rewrite the storage body locally, and write the result
// back; an edit that fails locally must never reach the server.
type PageEditor interface {
	Patch(ctx context.Context, reference, oldFragment, newFragment string) (PatchResult, error)
	ListTables(ctx context.Context, reference string) ([]TableSummary, error)
	UpdateCell(ctx context.Context, reference string, table, row, col int, content string, update CellUpdate) (TableEditResult, error)
	InsertRow(ctx context.Context, reference string, table, position int, values []string, header bool, styles []CellStyle) (TableEditResult, error)
	InsertColumn(ctx context.Context, reference string, table, position int, name, defaultValue, headerStyle string) (TableEditResult, error)
	DeleteRow(ctx context.Context, reference string, table, row int) (TableEditResult, error)
	DeleteColumn(ctx context.Context, reference string, table, position int) (TableEditResult, error)
	UploadAttachment(ctx context.Context, reference, file string) (AttachmentResult, error)
}

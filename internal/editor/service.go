package editor

import (
	"context"
	"fmt"

	"github.com/goliatone/go-confluence/internal/client"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/internal/patch"
	"github.com/goliatone/go-confluence/internal/storage"
	"github.com/goliatone/go-confluence/internal/tables"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// Config wires a Service.
type Config struct {
	Client   *client.Client
	Resolver *client.Resolver
	Macros   storage.MacroNames
	Logger   interfaces.Logger
}

// Service applies targeted edits to live pages. Every edit follows the same
// shape: resolve the reference, fetch the storage body, rewrite it locally,
// and write the result back. A failed rewrite returns before anything is
// sent, so a missing fragment or a bad table address never clobbers a page.
type Service struct {
	client   *client.Client
	resolver *client.Resolver
	patcher  *patch.Patcher
	tables   *tables.Editor
	logger   interfaces.Logger
}

var _ interfaces.PageEditor = (*Service)(nil)

// NewService builds a Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("editor: client is required")
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = client.NewResolver(cfg.Client, 0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		client:   cfg.Client,
		resolver: resolver,
		patcher:  patch.NewPatcher(cfg.Macros),
		tables:   tables.NewEditor(cfg.Macros),
		logger:   logger,
	}, nil
}

// Patch replaces the first occurrence of oldFragment on the referenced page
// with newFragment. The old fragment matches literally against the stored
// body; a fragment that does not occur fails with patch.ErrNotFound and the
// page is left untouched.
func (s *Service) Patch(ctx context.Context, reference, oldFragment, newFragment string) (interfaces.PatchResult, error) {
	page, err := s.fetch(ctx, reference)
	if err != nil {
		return interfaces.PatchResult{}, err
	}
	applied, err := s.patcher.Apply(page.Body, oldFragment, newFragment)
	if err != nil {
		return interfaces.PatchResult{}, err
	}
	updated, err := s.client.UpdatePage(ctx, page.ID, "", applied.Body)
	if err != nil {
		return interfaces.PatchResult{}, err
	}

	pageLog := logging.WithPageContext(s.logger, page.ID, page.SpaceKey, "patch")
	if applied.Matches > 1 {
		pageLog.Warn("fragment is not unique, replaced the first occurrence", "matches", applied.Matches)
	}
	pageLog.Info("page patched", "version", updated.Version)
	return interfaces.PatchResult{
		PageID:  updated.ID,
		Title:   updated.Title,
		Version: updated.Version,
		WebURL:  updated.WebURL,
		Matches: applied.Matches,
	}, nil
}

// ListTables summarizes every table on the referenced page.
func (s *Service) ListTables(ctx context.Context, reference string) ([]interfaces.TableSummary, error) {
	page, err := s.fetch(ctx, reference)
	if err != nil {
		return nil, err
	}
	found, err := s.tables.List(page.Body)
	if err != nil {
		return nil, err
	}
	summaries := make([]interfaces.TableSummary, len(found))
	for i, summary := range found {
		summaries[i] = interfaces.TableSummary{
			Index:     summary.Index,
			HeaderRow: summary.HeaderRow,
			RowCount:  summary.RowCount,
			ColCount:  summary.ColCount,
			Preview:   summary.Preview,
		}
	}
	return summaries, nil
}

// UpdateCell rewrites one cell of the addressed table on the referenced page.
func (s *Service) UpdateCell(ctx context.Context, reference string, table, row, col int, content string, update interfaces.CellUpdate) (interfaces.TableEditResult, error) {
	return s.editTable(ctx, reference, "table.update_cell", func(body string) (string, error) {
		return s.tables.UpdateCell(body, table, row, col, content, tables.CellUpdate{
			Append:    update.Append,
			Style:     update.Style,
			Highlight: update.Highlight,
		})
	})
}

// InsertRow adds a row to the addressed table ahead of position.
func (s *Service) InsertRow(ctx context.Context, reference string, table, position int, values []string, header bool, styles []interfaces.CellStyle) (interfaces.TableEditResult, error) {
	return s.editTable(ctx, reference, "table.insert_row", func(body string) (string, error) {
		return s.tables.InsertRow(body, table, position, values, header, cellStyles(styles))
	})
}

// InsertColumn adds a column to the addressed table ahead of position. Name
// fills header rows, defaultValue fills the rest.
func (s *Service) InsertColumn(ctx context.Context, reference string, table, position int, name, defaultValue, headerStyle string) (interfaces.TableEditResult, error) {
	return s.editTable(ctx, reference, "table.insert_column", func(body string) (string, error) {
		return s.tables.InsertColumn(body, table, position, name, defaultValue, headerStyle)
	})
}

// DeleteRow removes the addressed row from the addressed table.
func (s *Service) DeleteRow(ctx context.Context, reference string, table, row int) (interfaces.TableEditResult, error) {
	return s.editTable(ctx, reference, "table.delete_row", func(body string) (string, error) {
		return s.tables.DeleteRow(body, table, row)
	})
}

// DeleteColumn removes the column at position from the addressed table.
func (s *Service) DeleteColumn(ctx context.Context, reference string, table, position int) (interfaces.TableEditResult, error) {
	return s.editTable(ctx, reference, "table.delete_column", func(body string) (string, error) {
		return s.tables.DeleteColumn(body, table, position)
	})
}

// UploadAttachment uploads a local file to the referenced page, replacing
// any existing attachment with the same filename.
func (s *Service) UploadAttachment(ctx context.Context, reference, file string) (interfaces.AttachmentResult, error) {
	pageID, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return interfaces.AttachmentResult{}, err
	}
	attachment, err := s.client.UploadAttachment(ctx, pageID, file)
	if err != nil {
		return interfaces.AttachmentResult{}, err
	}
	return interfaces.AttachmentResult{
		PageID:    pageID,
		ID:        attachment.ID,
		Title:     attachment.Title,
		MediaType: attachment.MediaType,
	}, nil
}

func (s *Service) editTable(ctx context.Context, reference, operation string, rewrite func(string) (string, error)) (interfaces.TableEditResult, error) {
	page, err := s.fetch(ctx, reference)
	if err != nil {
		return interfaces.TableEditResult{}, err
	}
	body, err := rewrite(page.Body)
	if err != nil {
		return interfaces.TableEditResult{}, err
	}
	updated, err := s.client.UpdatePage(ctx, page.ID, "", body)
	if err != nil {
		return interfaces.TableEditResult{}, err
	}
	logging.WithPageContext(s.logger, page.ID, page.SpaceKey, operation).Info("table updated", "version", updated.Version)
	return interfaces.TableEditResult{
		PageID:  updated.ID,
		Title:   updated.Title,
		Version: updated.Version,
		WebURL:  updated.WebURL,
	}, nil
}

func (s *Service) fetch(ctx context.Context, reference string) (client.Page, error) {
	pageID, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return client.Page{}, err
	}
	return s.client.GetPage(ctx, pageID)
}

func cellStyles(styles []interfaces.CellStyle) []tables.CellStyle {
	if len(styles) == 0 {
		return nil
	}
	out := make([]tables.CellStyle, len(styles))
	for i, style := range styles {
		out[i] = tables.CellStyle{Style: style.Style, Highlight: style.Highlight}
	}
	return out
}

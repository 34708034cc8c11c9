package tablescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

func cellStyles(styles ...string) []interfaces.CellStyle {
	out := make([]interfaces.CellStyle, len(styles))
	for i, s := range styles {
		out[i] = interfaces.CellStyle{Style: s}
	}
	return out
}

type updateCellCall struct {
	reference string
	table     int
	row       int
	col       int
	content   string
	update    interfaces.CellUpdate
}

type insertRowCall struct {
	reference string
	table     int
	position  int
	values    []string
	header    bool
	styles    []interfaces.CellStyle
}

type deleteColumnCall struct {
	reference string
	table     int
	column    int
}

type stubTableEditor struct {
	updateCellCalls   []updateCellCall
	insertRowCalls    []insertRowCall
	deleteColumnCalls []deleteColumnCall

	result  interfaces.TableEditResult
	editErr error
}

func (s *stubTableEditor) Patch(context.Context, string, string, string) (interfaces.PatchResult, error) {
	return interfaces.PatchResult{}, nil
}

func (s *stubTableEditor) ListTables(context.Context, string) ([]interfaces.TableSummary, error) {
	return nil, nil
}

func (s *stubTableEditor) UpdateCell(ctx context.Context, reference string, table, row, col int, content string, update interfaces.CellUpdate) (interfaces.TableEditResult, error) {
	s.updateCellCalls = append(s.updateCellCalls, updateCellCall{
		reference: reference,
		table:     table,
		row:       row,
		col:       col,
		content:   content,
		update:    update,
	})
	if s.editErr != nil {
		return interfaces.TableEditResult{}, s.editErr
	}
	return s.result, nil
}

func (s *stubTableEditor) InsertRow(ctx context.Context, reference string, table, position int, values []string, header bool, styles []interfaces.CellStyle) (interfaces.TableEditResult, error) {
	s.insertRowCalls = append(s.insertRowCalls, insertRowCall{
		reference: reference,
		table:     table,
		position:  position,
		values:    values,
		header:    header,
		styles:    styles,
	})
	if s.editErr != nil {
		return interfaces.TableEditResult{}, s.editErr
	}
	return s.result, nil
}

func (s *stubTableEditor) InsertColumn(context.Context, string, int, int, string, string, string) (interfaces.TableEditResult, error) {
	if s.editErr != nil {
		return interfaces.TableEditResult{}, s.editErr
	}
	return s.result, nil
}

func (s *stubTableEditor) DeleteRow(context.Context, string, int, int) (interfaces.TableEditResult, error) {
	if s.editErr != nil {
		return interfaces.TableEditResult{}, s.editErr
	}
	return s.result, nil
}

func (s *stubTableEditor) DeleteColumn(ctx context.Context, reference string, table, column int) (interfaces.TableEditResult, error) {
	s.deleteColumnCalls = append(s.deleteColumnCalls, deleteColumnCall{
		reference: reference,
		table:     table,
		column:    column,
	})
	if s.editErr != nil {
		return interfaces.TableEditResult{}, s.editErr
	}
	return s.result, nil
}

func (s *stubTableEditor) UploadAttachment(context.Context, string, string) (interfaces.AttachmentResult, error) {
	return interfaces.AttachmentResult{}, nil
}

func TestUpdateCellHandlerInvokesEditor(t *testing.T) {
	editor := &stubTableEditor{
		result: interfaces.TableEditResult{PageID: "7001", Version: 10},
	}
	handler := NewUpdateCellHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	cmd := UpdateCellCommand{
		Reference: "7001",
		Table:     0,
		Row:       1,
		Column:    1,
		Content:   "up",
		Append:    true,
		Style:     "background:#fff",
		Highlight: "green",
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute update cell: %v", err)
	}

	if len(editor.updateCellCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(editor.updateCellCalls))
	}
	call := editor.updateCellCalls[0]
	if call.reference != "7001" || call.table != 0 || call.row != 1 || call.col != 1 {
		t.Fatalf("expected cell address forwarded, got %+v", call)
	}
	if call.content != "up" {
		t.Fatalf("expected content forwarded, got %q", call.content)
	}
	if !call.update.Append || call.update.Style != "background:#fff" || call.update.Highlight != "green" {
		t.Fatalf("expected update options forwarded, got %+v", call.update)
	}
}

func TestUpdateCellHandlerFeatureDisabled(t *testing.T) {
	editor := &stubTableEditor{}
	handler := NewUpdateCellHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), UpdateCellCommand{
		Reference: "7001",
		Content:   "x",
	})
	if !errors.Is(err, ErrTableCommandsDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if len(editor.updateCellCalls) != 0 {
		t.Fatalf("expected no update calls, got %d", len(editor.updateCellCalls))
	}
}

func TestUpdateCellHandlerEditorError(t *testing.T) {
	editor := &stubTableEditor{editErr: errors.New("index out of range")}
	handler := NewUpdateCellHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	err := handler.Execute(context.Background(), UpdateCellCommand{
		Reference: "7001",
		Content:   "x",
	})
	if err == nil {
		t.Fatal("expected editor error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
}

func TestUpdateCellHandlerContextCancellation(t *testing.T) {
	editor := &stubTableEditor{}
	handler := NewUpdateCellHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, UpdateCellCommand{
		Reference: "7001",
		Content:   "x",
	})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
	if len(editor.updateCellCalls) != 0 {
		t.Fatalf("expected no update calls, got %d", len(editor.updateCellCalls))
	}
}

func TestInsertRowHandlerInvokesEditor(t *testing.T) {
	editor := &stubTableEditor{
		result: interfaces.TableEditResult{PageID: "7001", Version: 3},
	}
	handler := NewInsertRowHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	styles := cellStyles("", "background:#eee")
	cmd := InsertRowCommand{
		Reference: "7001",
		Table:     1,
		Position:  2,
		Values:    []string{"worker", "up"},
		Header:    false,
		Styles:    styles,
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute insert row: %v", err)
	}

	if len(editor.insertRowCalls) != 1 {
		t.Fatalf("expected one insert call, got %d", len(editor.insertRowCalls))
	}
	call := editor.insertRowCalls[0]
	if call.table != 1 || call.position != 2 {
		t.Fatalf("expected position forwarded, got %+v", call)
	}
	if len(call.values) != 2 || call.values[0] != "worker" {
		t.Fatalf("expected values forwarded, got %v", call.values)
	}
	if len(call.styles) != 2 || call.styles[1].Style != "background:#eee" {
		t.Fatalf("expected styles forwarded, got %v", call.styles)
	}
}

func TestDeleteColumnHandlerInvokesEditor(t *testing.T) {
	editor := &stubTableEditor{
		result: interfaces.TableEditResult{PageID: "7001", Version: 5},
	}
	handler := NewDeleteColumnHandler(editor, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	cmd := DeleteColumnCommand{Reference: "7001", Table: 0, Column: 2}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute delete column: %v", err)
	}

	if len(editor.deleteColumnCalls) != 1 {
		t.Fatalf("expected one delete call, got %d", len(editor.deleteColumnCalls))
	}
	call := editor.deleteColumnCalls[0]
	if call.reference != "7001" || call.table != 0 || call.column != 2 {
		t.Fatalf("expected column address forwarded, got %+v", call)
	}
}

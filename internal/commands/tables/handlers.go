package tablescmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	updateCellOperation   = "tables.update_cell"
	insertRowOperation    = "tables.insert_row"
	insertColumnOperation = "tables.insert_column"
	deleteRowOperation    = "tables.delete_row"
	deleteColumnOperation = "tables.delete_column"
)

var (
	// ErrTableCommandsDisabled is returned when the commands feature flag is disabled at runtime.
	ErrTableCommandsDisabled = errors.New("tables command: feature disabled")
)

var (
	_ command.Commander[UpdateCellCommand]   = (*UpdateCellHandler)(nil)
	_ command.Commander[InsertRowCommand]    = (*InsertRowHandler)(nil)
	_ command.Commander[InsertColumnCommand] = (*InsertColumnHandler)(nil)
	_ command.Commander[DeleteRowCommand]    = (*DeleteRowHandler)(nil)
	_ command.Commander[DeleteColumnCommand] = (*DeleteColumnHandler)(nil)
)

func logTableEdit(logger interfaces.Logger, operation string, table int, result interfaces.TableEditResult) {
	logging.WithFields(logger, map[string]any{
		"page_id": result.PageID,
		"version": result.Version,
		"table":   table,
	}).Info("tables.command." + operation + ".completed")
}

// UpdateCellHandler rewrites table cells via the shared command handler foundation.
type UpdateCellHandler struct {
	inner *commands.Handler[UpdateCellCommand]
}

// NewUpdateCellHandler creates a handler bound to the supplied page editor.
func NewUpdateCellHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UpdateCellCommand]) *UpdateCellHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UpdateCellCommand) error {
		if !gates.commandsEnabled() {
			return ErrTableCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.UpdateCell(ctx, msg.Reference, msg.Table, msg.Row, msg.Column, msg.Content, interfaces.CellUpdate{
			Append:    msg.Append,
			Style:     msg.Style,
			Highlight: msg.Highlight,
		})
		if err != nil {
			return err
		}
		logTableEdit(baseLogger, "update_cell", msg.Table, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateCellCommand]{
		commands.WithLogger[UpdateCellCommand](baseLogger),
		commands.WithOperation[UpdateCellCommand](updateCellOperation),
		commands.WithMessageFields(func(msg UpdateCellCommand) map[string]any {
			return map[string]any{
				"reference": msg.Reference,
				"table":     msg.Table,
				"row":       msg.Row,
				"column":    msg.Column,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateCellCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateCellHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateCellCommand].
func (h *UpdateCellHandler) Execute(ctx context.Context, msg UpdateCellCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InsertRowHandler adds table rows via the shared command handler foundation.
type InsertRowHandler struct {
	inner *commands.Handler[InsertRowCommand]
}

// NewInsertRowHandler creates a handler bound to the supplied page editor.
func NewInsertRowHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InsertRowCommand]) *InsertRowHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InsertRowCommand) error {
		if !gates.commandsEnabled() {
			return ErrTableCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.InsertRow(ctx, msg.Reference, msg.Table, msg.Position, msg.Values, msg.Header, msg.Styles)
		if err != nil {
			return err
		}
		logTableEdit(baseLogger, "insert_row", msg.Table, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[InsertRowCommand]{
		commands.WithLogger[InsertRowCommand](baseLogger),
		commands.WithOperation[InsertRowCommand](insertRowOperation),
		commands.WithMessageFields(func(msg InsertRowCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
				"table":     msg.Table,
				"position":  msg.Position,
			}
			if msg.Header {
				fields["header"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InsertRowCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InsertRowHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InsertRowCommand].
func (h *InsertRowHandler) Execute(ctx context.Context, msg InsertRowCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InsertColumnHandler adds table columns via the shared command handler foundation.
type InsertColumnHandler struct {
	inner *commands.Handler[InsertColumnCommand]
}

// NewInsertColumnHandler creates a handler bound to the supplied page editor.
func NewInsertColumnHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InsertColumnCommand]) *InsertColumnHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InsertColumnCommand) error {
		if !gates.commandsEnabled() {
			return ErrTableCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.InsertColumn(ctx, msg.Reference, msg.Table, msg.Position, msg.Name, msg.DefaultValue, msg.HeaderStyle)
		if err != nil {
			return err
		}
		logTableEdit(baseLogger, "insert_column", msg.Table, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[InsertColumnCommand]{
		commands.WithLogger[InsertColumnCommand](baseLogger),
		commands.WithOperation[InsertColumnCommand](insertColumnOperation),
		commands.WithMessageFields(func(msg InsertColumnCommand) map[string]any {
			return map[string]any{
				"reference": msg.Reference,
				"table":     msg.Table,
				"position":  msg.Position,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InsertColumnCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InsertColumnHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InsertColumnCommand].
func (h *InsertColumnHandler) Execute(ctx context.Context, msg InsertColumnCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteRowHandler removes table rows via the shared command handler foundation.
type DeleteRowHandler struct {
	inner *commands.Handler[DeleteRowCommand]
}

// NewDeleteRowHandler creates a handler bound to the supplied page editor.
func NewDeleteRowHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteRowCommand]) *DeleteRowHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteRowCommand) error {
		if !gates.commandsEnabled() {
			return ErrTableCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.DeleteRow(ctx, msg.Reference, msg.Table, msg.Row)
		if err != nil {
			return err
		}
		logTableEdit(baseLogger, "delete_row", msg.Table, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteRowCommand]{
		commands.WithLogger[DeleteRowCommand](baseLogger),
		commands.WithOperation[DeleteRowCommand](deleteRowOperation),
		commands.WithMessageFields(func(msg DeleteRowCommand) map[string]any {
			return map[string]any{
				"reference": msg.Reference,
				"table":     msg.Table,
				"row":       msg.Row,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteRowCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteRowHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteRowCommand].
func (h *DeleteRowHandler) Execute(ctx context.Context, msg DeleteRowCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteColumnHandler removes table columns via the shared command handler foundation.
type DeleteColumnHandler struct {
	inner *commands.Handler[DeleteColumnCommand]
}

// NewDeleteColumnHandler creates a handler bound to the supplied page editor.
func NewDeleteColumnHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeleteColumnCommand]) *DeleteColumnHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteColumnCommand) error {
		if !gates.commandsEnabled() {
			return ErrTableCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.DeleteColumn(ctx, msg.Reference, msg.Table, msg.Column)
		if err != nil {
			return err
		}
		logTableEdit(baseLogger, "delete_column", msg.Table, result)
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteColumnCommand]{
		commands.WithLogger[DeleteColumnCommand](baseLogger),
		commands.WithOperation[DeleteColumnCommand](deleteColumnOperation),
		commands.WithMessageFields(func(msg DeleteColumnCommand) map[string]any {
			return map[string]any{
				"reference": msg.Reference,
				"table":     msg.Table,
				"column":    msg.Column,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteColumnCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteColumnHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteColumnCommand].
func (h *DeleteColumnHandler) Execute(ctx context.Context, msg DeleteColumnCommand) error {
	return h.inner.Execute(ctx, msg)
}

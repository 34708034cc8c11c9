package tablescmd

import (
	"errors"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the table command handlers produced by RegisterTableCommands.
type HandlerSet struct {
	UpdateCell   *UpdateCellHandler
	InsertRow    *InsertRowHandler
	InsertColumn *InsertColumnHandler
	DeleteRow    *DeleteRowHandler
	DeleteColumn *DeleteColumnHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	updateCellOpts   []commands.HandlerOption[UpdateCellCommand]
	insertRowOpts    []commands.HandlerOption[InsertRowCommand]
	insertColumnOpts []commands.HandlerOption[InsertColumnCommand]
	deleteRowOpts    []commands.HandlerOption[DeleteRowCommand]
	deleteColumnOpts []commands.HandlerOption[DeleteColumnCommand]
}

// WithUpdateCellHandlerOptions forwards options to the UpdateCellHandler constructor.
func WithUpdateCellHandlerOptions(opts ...commands.HandlerOption[UpdateCellCommand]) Option {
	return func(cfg *options) {
		cfg.updateCellOpts = append(cfg.updateCellOpts, opts...)
	}
}

// WithInsertRowHandlerOptions forwards options to the InsertRowHandler constructor.
func WithInsertRowHandlerOptions(opts ...commands.HandlerOption[InsertRowCommand]) Option {
	return func(cfg *options) {
		cfg.insertRowOpts = append(cfg.insertRowOpts, opts...)
	}
}

// WithInsertColumnHandlerOptions forwards options to the InsertColumnHandler constructor.
func WithInsertColumnHandlerOptions(opts ...commands.HandlerOption[InsertColumnCommand]) Option {
	return func(cfg *options) {
		cfg.insertColumnOpts = append(cfg.insertColumnOpts, opts...)
	}
}

// WithDeleteRowHandlerOptions forwards options to the DeleteRowHandler constructor.
func WithDeleteRowHandlerOptions(opts ...commands.HandlerOption[DeleteRowCommand]) Option {
	return func(cfg *options) {
		cfg.deleteRowOpts = append(cfg.deleteRowOpts, opts...)
	}
}

// WithDeleteColumnHandlerOptions forwards options to the DeleteColumnHandler constructor.
func WithDeleteColumnHandlerOptions(opts ...commands.HandlerOption[DeleteColumnCommand]) Option {
	return func(cfg *options) {
		cfg.deleteColumnOpts = append(cfg.deleteColumnOpts, opts...)
	}
}

// RegisterTableCommands builds table command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations.
func RegisterTableCommands(reg CommandRegistry, editor interfaces.PageEditor, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if editor == nil {
		return nil, errors.New("tables command registration: editor is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "tables")

	set := &HandlerSet{
		UpdateCell:   NewUpdateCellHandler(editor, logger, gates, cfg.updateCellOpts...),
		InsertRow:    NewInsertRowHandler(editor, logger, gates, cfg.insertRowOpts...),
		InsertColumn: NewInsertColumnHandler(editor, logger, gates, cfg.insertColumnOpts...),
		DeleteRow:    NewDeleteRowHandler(editor, logger, gates, cfg.deleteRowOpts...),
		DeleteColumn: NewDeleteColumnHandler(editor, logger, gates, cfg.deleteColumnOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.UpdateCell, set.InsertRow, set.InsertColumn, set.DeleteRow, set.DeleteColumn} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

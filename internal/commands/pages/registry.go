package pagescmd

import (
	"errors"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the page command handlers produced by RegisterPageCommands.
type HandlerSet struct {
	Patch  *PatchPageHandler
	Upload *UploadAttachmentHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	patchHandlerOpts  []commands.HandlerOption[PatchPageCommand]
	uploadHandlerOpts []commands.HandlerOption[UploadAttachmentCommand]
}

// WithPatchHandlerOptions forwards options to the PatchPageHandler constructor.
func WithPatchHandlerOptions(opts ...commands.HandlerOption[PatchPageCommand]) Option {
	return func(cfg *options) {
		cfg.patchHandlerOpts = append(cfg.patchHandlerOpts, opts...)
	}
}

// WithUploadHandlerOptions forwards options to the UploadAttachmentHandler constructor.
func WithUploadHandlerOptions(opts ...commands.HandlerOption[UploadAttachmentCommand]) Option {
	return func(cfg *options) {
		cfg.uploadHandlerOpts = append(cfg.uploadHandlerOpts, opts...)
	}
}

// RegisterPageCommands builds page command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations.
func RegisterPageCommands(reg CommandRegistry, editor interfaces.PageEditor, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if editor == nil {
		return nil, errors.New("pages command registration: editor is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "pages")

	patchHandler := NewPatchPageHandler(editor, logger, gates, cfg.patchHandlerOpts...)
	uploadHandler := NewUploadAttachmentHandler(editor, logger, gates, cfg.uploadHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(patchHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(uploadHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Patch:  patchHandler,
		Upload: uploadHandler,
	}, nil
}

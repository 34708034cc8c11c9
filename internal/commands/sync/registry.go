package synccmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the sync command handlers produced by RegisterSyncCommands.
type HandlerSet struct {
	PushDocument  *PushDocumentHandler
	PushDirectory *PushDirectoryHandler
	Pull          *PullPageHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	pushDocumentOpts  []commands.HandlerOption[PushDocumentCommand]
	pushDirectoryOpts []commands.HandlerOption[PushDirectoryCommand]
	pullOpts          []commands.HandlerOption[PullPageCommand]
}

// WithPushDocumentHandlerOptions forwards options to the PushDocumentHandler constructor.
func WithPushDocumentHandlerOptions(opts ...commands.HandlerOption[PushDocumentCommand]) Option {
	return func(cfg *options) {
		cfg.pushDocumentOpts = append(cfg.pushDocumentOpts, opts...)
	}
}

// WithPushDirectoryHandlerOptions forwards options to the PushDirectoryHandler constructor.
func WithPushDirectoryHandlerOptions(opts ...commands.HandlerOption[PushDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.pushDirectoryOpts = append(cfg.pushDirectoryOpts, opts...)
	}
}

// WithPullHandlerOptions forwards options to the PullPageHandler constructor.
func WithPullHandlerOptions(opts ...commands.HandlerOption[PullPageCommand]) Option {
	return func(cfg *options) {
		cfg.pullOpts = append(cfg.pullOpts, opts...)
	}
}

// RegisterSyncCommands builds sync command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations (dispatcher, cron).
func RegisterSyncCommands(reg CommandRegistry, syncer interfaces.DocumentSyncer, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if syncer == nil {
		return nil, errors.New("sync command registration: syncer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "sync")

	pushDocument := NewPushDocumentHandler(syncer, logger, gates, cfg.pushDocumentOpts...)
	pushDirectory := NewPushDirectoryHandler(syncer, logger, gates, cfg.pushDirectoryOpts...)
	pull := NewPullPageHandler(syncer, logger, gates, cfg.pullOpts...)

	if reg != nil {
		for _, handler := range []any{pushDocument, pushDirectory, pull} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return &HandlerSet{
		PushDocument:  pushDocument,
		PushDirectory: pushDirectory,
		Pull:          pull,
	}, nil
}

// RegisterSyncCron wires the provided push handler into a cron registrar
// using the supplied command configuration and message payload. The handler
// is executed with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *PushDirectoryHandler, cfg command.HandlerConfig, msg PushDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}

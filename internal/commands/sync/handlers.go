package synccmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	pushDocumentOperation  = "sync.push_document"
	pushDirectoryOperation = "sync.push_directory"
	pullPageOperation      = "sync.pull_page"
)

var (
	// ErrSyncDisabled is returned when the sync feature flag is disabled at runtime.
	ErrSyncDisabled = errors.New("sync command: feature disabled")
)

var (
	_ command.Commander[PushDocumentCommand]  = (*PushDocumentHandler)(nil)
	_ command.Commander[PushDirectoryCommand] = (*PushDirectoryHandler)(nil)
	_ command.Commander[PullPageCommand]      = (*PullPageHandler)(nil)
)

// PushDocumentHandler pushes single documents via the shared command handler foundation.
type PushDocumentHandler struct {
	inner *commands.Handler[PushDocumentCommand]
}

// NewPushDocumentHandler creates a handler bound to the supplied syncer.
func NewPushDocumentHandler(syncer interfaces.DocumentSyncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PushDocumentCommand]) *PushDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PushDocumentCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := syncer.Push(ctx, msg.Path, msg.Force)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":    result.Path,
			"page_id": result.PageID,
			"version": result.Version,
			"created": result.Created,
		}).Info("sync.command.push_document.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PushDocumentCommand]{
		commands.WithLogger[PushDocumentCommand](baseLogger),
		commands.WithOperation[PushDocumentCommand](pushDocumentOperation),
		commands.WithMessageFields(func(msg PushDocumentCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Force {
				fields["force"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PushDocumentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PushDocumentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PushDocumentCommand].
func (h *PushDocumentHandler) Execute(ctx context.Context, msg PushDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PushDirectoryHandler pushes whole content directories via the shared command handler foundation.
type PushDirectoryHandler struct {
	inner *commands.Handler[PushDirectoryCommand]
}

// NewPushDirectoryHandler creates a handler bound to the supplied syncer.
func NewPushDirectoryHandler(syncer interfaces.DocumentSyncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PushDirectoryCommand]) *PushDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PushDirectoryCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// PushAll reports the documents that made it even when others
		// failed, so successful pushes are logged before the error returns.
		results, err := syncer.PushAll(ctx, msg.Force)
		if len(results) > 0 {
			logging.WithFields(baseLogger, map[string]any{
				"pushed_count": len(results),
				"force":        msg.Force,
			}).Info("sync.command.push_directory.pushed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[PushDirectoryCommand]{
		commands.WithLogger[PushDirectoryCommand](baseLogger),
		commands.WithOperation[PushDirectoryCommand](pushDirectoryOperation),
		commands.WithMessageFields(func(msg PushDirectoryCommand) map[string]any {
			if !msg.Force {
				return nil
			}
			return map[string]any{"force": true}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PushDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PushDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PushDirectoryCommand].
func (h *PushDirectoryHandler) Execute(ctx context.Context, msg PushDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PullPageHandler pulls pages into local documents via the shared command handler foundation.
type PullPageHandler struct {
	inner *commands.Handler[PullPageCommand]
}

// NewPullPageHandler creates a handler bound to the supplied syncer.
func NewPullPageHandler(syncer interfaces.DocumentSyncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PullPageCommand]) *PullPageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PullPageCommand) error {
		if !gates.syncEnabled() {
			return ErrSyncDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := syncer.Pull(ctx, msg.Reference, msg.Path)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":    result.Path,
			"page_id": result.PageID,
			"version": result.Version,
		}).Info("sync.command.pull_page.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PullPageCommand]{
		commands.WithLogger[PullPageCommand](baseLogger),
		commands.WithOperation[PullPageCommand](pullPageOperation),
		commands.WithMessageFields(func(msg PullPageCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
			}
			if msg.Path != "" {
				fields["path"] = msg.Path
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PullPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PullPageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PullPageCommand].
func (h *PullPageHandler) Execute(ctx context.Context, msg PullPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

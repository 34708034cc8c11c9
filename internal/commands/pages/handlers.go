package pagescmd

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/goliatone/go-confluence/internal/commands"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	patchOperation  = "pages.patch"
	uploadOperation = "pages.upload_attachment"
)

var (
	// ErrPageCommandsDisabled is returned when the commands feature flag is disabled at runtime.
	ErrPageCommandsDisabled = errors.New("pages command: feature disabled")
)

var (
	_ command.Commander[PatchPageCommand]        = (*PatchPageHandler)(nil)
	_ command.Commander[UploadAttachmentCommand] = (*UploadAttachmentHandler)(nil)
)

// PatchPageHandler applies exact-fragment patches via the shared command handler foundation.
type PatchPageHandler struct {
	inner *commands.Handler[PatchPageCommand]
}

// NewPatchPageHandler creates a handler bound to the supplied page editor.
func NewPatchPageHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PatchPageCommand]) *PatchPageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PatchPageCommand) error {
		if !gates.commandsEnabled() {
			return ErrPageCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.Patch(ctx, msg.Reference, msg.OldFragment, msg.NewFragment)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"page_id": result.PageID,
			"version": result.Version,
			"matches": result.Matches,
		}).Info("pages.command.patch.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[PatchPageCommand]{
		commands.WithLogger[PatchPageCommand](baseLogger),
		commands.WithOperation[PatchPageCommand](patchOperation),
		commands.WithMessageFields(func(msg PatchPageCommand) map[string]any {
			fields := map[string]any{
				"reference": msg.Reference,
			}
			if msg.NewFragment == "" {
				fields["delete_fragment"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PatchPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PatchPageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PatchPageCommand].
func (h *PatchPageHandler) Execute(ctx context.Context, msg PatchPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UploadAttachmentHandler uploads page attachments via the shared command handler foundation.
type UploadAttachmentHandler struct {
	inner *commands.Handler[UploadAttachmentCommand]
}

// NewUploadAttachmentHandler creates a handler bound to the supplied page editor.
func NewUploadAttachmentHandler(editor interfaces.PageEditor, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UploadAttachmentCommand]) *UploadAttachmentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UploadAttachmentCommand) error {
		if !gates.commandsEnabled() {
			return ErrPageCommandsDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := editor.UploadAttachment(ctx, msg.Reference, msg.File)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"page_id":       result.PageID,
			"attachment_id": result.ID,
			"media_type":    result.MediaType,
		}).Info("pages.command.upload_attachment.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[UploadAttachmentCommand]{
		commands.WithLogger[UploadAttachmentCommand](baseLogger),
		commands.WithOperation[UploadAttachmentCommand](uploadOperation),
		commands.WithMessageFields(func(msg UploadAttachmentCommand) map[string]any {
			return map[string]any{
				"reference": msg.Reference,
				"filename":  filepath.Base(msg.File),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UploadAttachmentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UploadAttachmentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UploadAttachmentCommand].
func (h *UploadAttachmentHandler) Execute(ctx context.Context, msg UploadAttachmentCommand) error {
	return h.inner.Execute(ctx, msg)
}

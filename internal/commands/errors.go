package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-confluence/internal/client"
	"github.com/goliatone/go-confluence/internal/patch"
	syncsvc "github.com/goliatone/go-confluence/internal/sync"
	"github.com/goliatone/go-confluence/internal/tables"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"

	commandPageNotFound    = "COMMAND_PAGE_NOT_FOUND"
	commandVersionConflict = "COMMAND_VERSION_CONFLICT"
	commandBadReference    = "COMMAND_PAGE_REFERENCE"
	commandFragmentMissing = "COMMAND_FRAGMENT_NOT_FOUND"
	commandTableStructure  = "COMMAND_TABLE_STRUCTURE"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError tags handler failures with a text code naming the page,
// table, or fragment condition so callers can react without unwrapping
// internal error types.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	message, code := classifyExecuteError(err)
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func classifyExecuteError(err error) (string, string) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return "page not found", commandPageNotFound
	case errors.Is(err, client.ErrConflict), errors.Is(err, syncsvc.ErrConflict):
		return "page version conflict", commandVersionConflict
	case errors.Is(err, client.ErrPageReference):
		return "page reference not resolved", commandBadReference
	case errors.Is(err, patch.ErrNotFound):
		return "fragment not found", commandFragmentMissing
	case errors.Is(err, tables.ErrOutOfRange), errors.Is(err, tables.ErrAmbiguousStructure):
		return "table structure rejected the edit", commandTableStructure
	default:
		return "command execution failed", commandExecuteFailed
	}
}

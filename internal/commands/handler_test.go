package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-confluence/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "confluence.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "confluence.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

type captureLogger struct {
	fields   map[string]any
	messages []string
}

func (l *captureLogger) log(msg string) { l.messages = append(l.messages, msg) }

func (l *captureLogger) Trace(msg string, _ ...any) { l.log(msg) }
func (l *captureLogger) Debug(msg string, _ ...any) { l.log(msg) }
func (l *captureLogger) Info(msg string, _ ...any)  { l.log(msg) }
func (l *captureLogger) Warn(msg string, _ ...any)  { l.log(msg) }
func (l *captureLogger) Error(msg string, _ ...any) { l.log(msg) }
func (l *captureLogger) Fatal(msg string, _ ...any) { l.log(msg) }

func (l *captureLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	if l.fields == nil {
		l.fields = map[string]any{}
	}
	for key, value := range fields {
		l.fields[key] = value
	}
	return l
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerAttachesMessageFields(t *testing.T) {
	logger := &captureLogger{}
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithLogger[testMessage](logger),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"page": "4242"}
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if logger.fields["command"] != "confluence.test.message" {
		t.Fatalf("expected command field, got %v", logger.fields)
	}
	if logger.fields["page"] != "4242" {
		t.Fatalf("expected message field, got %v", logger.fields)
	}
}

func TestHandlerTelemetryReplacesOutcomeLogging(t *testing.T) {
	execErr := errors.New("boom")
	logger := &captureLogger{}

	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	},
		WithLogger[testMessage](logger),
		WithTelemetry(func(ctx context.Context, msg testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected execution error")
	}

	if got.Status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", got.Status)
	}
	if got.Command != "confluence.test.message" {
		t.Fatalf("expected command name, got %q", got.Command)
	}
	if !errors.Is(got.Error, execErr) {
		t.Fatalf("expected execution error in telemetry, got %v", got.Error)
	}
	if got.Logger == nil {
		t.Fatal("expected enriched logger in telemetry info")
	}

	if len(logger.messages) != 1 || logger.messages[0] != "command.execute.start" {
		t.Fatalf("expected telemetry to replace outcome logging, got %v", logger.messages)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := &captureLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:  "confluence.test.message",
		Fields:   map[string]any{"operation": "test"},
		Duration: 5 * time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})

	if len(logger.messages) != 1 || logger.messages[0] != "command.execute.success" {
		t.Fatalf("expected success entry, got %v", logger.messages)
	}
	if logger.fields["operation"] != "test" {
		t.Fatalf("expected fields to be attached, got %v", logger.fields)
	}
}

package synccmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type pushCall struct {
	path  string
	force bool
}

type pullCall struct {
	reference string
	path      string
}

type stubSyncer struct {
	pushCalls    []pushCall
	pushAllCalls []bool
	pullCalls    []pullCall

	pushResult     interfaces.PushResult
	pushAllResults []interfaces.PushResult
	pullResult     interfaces.PullResult

	pushErr    error
	pushAllErr error
	pullErr    error
}

func (s *stubSyncer) Push(ctx context.Context, path string, force bool) (interfaces.PushResult, error) {
	s.pushCalls = append(s.pushCalls, pushCall{path: path, force: force})
	if s.pushErr != nil {
		return interfaces.PushResult{}, s.pushErr
	}
	return s.pushResult, nil
}

func (s *stubSyncer) PushAll(ctx context.Context, force bool) ([]interfaces.PushResult, error) {
	s.pushAllCalls = append(s.pushAllCalls, force)
	return s.pushAllResults, s.pushAllErr
}

func (s *stubSyncer) Pull(ctx context.Context, reference, path string) (interfaces.PullResult, error) {
	s.pullCalls = append(s.pullCalls, pullCall{reference: reference, path: path})
	if s.pullErr != nil {
		return interfaces.PullResult{}, s.pullErr
	}
	return s.pullResult, nil
}

func (s *stubSyncer) Status(context.Context, string) (interfaces.SyncStatus, error) {
	return interfaces.SyncStatus{}, nil
}

func (s *stubSyncer) StatusAll(context.Context) ([]interfaces.SyncStatus, error) {
	return nil, nil
}

type captureLogger struct {
	fields       []map[string]any
	infoMessages []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(msg string, _ ...any) {
	c.infoMessages = append(c.infoMessages, msg)
}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.fields = append(c.fields, copied)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger {
	return c
}

func TestPushDocumentHandlerInvokesSyncer(t *testing.T) {
	syncer := &stubSyncer{
		pushResult: interfaces.PushResult{
			Path:    "docs/runbook.md",
			PageID:  "9001",
			Version: 2,
			Created: true,
		},
	}
	logger := &captureLogger{}
	handler := NewPushDocumentHandler(syncer, logger, FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	cmd := PushDocumentCommand{Path: "docs/runbook.md", Force: true}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute push: %v", err)
	}

	if len(syncer.pushCalls) != 1 {
		t.Fatalf("expected one push call, got %d", len(syncer.pushCalls))
	}
	call := syncer.pushCalls[0]
	if call.path != cmd.Path || !call.force {
		t.Fatalf("expected push args forwarded, got %+v", call)
	}

	found := false
	for _, fields := range logger.fields {
		if fields["page_id"] == "9001" && fields["created"] == true {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected completion fields recorded, got %#v", logger.fields)
	}
}

func TestPushDocumentHandlerFeatureDisabled(t *testing.T) {
	syncer := &stubSyncer{}
	handler := NewPushDocumentHandler(syncer, logging.NoOp(), FeatureGates{
		SyncEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), PushDocumentCommand{Path: "a.md"})
	if !errors.Is(err, ErrSyncDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if len(syncer.pushCalls) != 0 {
		t.Fatalf("expected no push calls, got %d", len(syncer.pushCalls))
	}
}

func TestPushDocumentHandlerSyncerError(t *testing.T) {
	syncer := &stubSyncer{pushErr: errors.New("version conflict")}
	handler := NewPushDocumentHandler(syncer, logging.NoOp(), FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	err := handler.Execute(context.Background(), PushDocumentCommand{Path: "a.md"})
	if err == nil {
		t.Fatal("expected syncer error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
}

func TestPushDirectoryHandlerLogsPartialResults(t *testing.T) {
	syncer := &stubSyncer{
		pushAllResults: []interfaces.PushResult{
			{Path: "a.md", PageID: "1"},
			{Path: "b.md", PageID: "2"},
		},
		pushAllErr: errors.New("c.md: missing frontmatter"),
	}
	logger := &captureLogger{}
	handler := NewPushDirectoryHandler(syncer, logger, FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	err := handler.Execute(context.Background(), PushDirectoryCommand{})
	if err == nil {
		t.Fatal("expected error carried through from failed documents")
	}

	if len(syncer.pushAllCalls) != 1 {
		t.Fatalf("expected one push all call, got %d", len(syncer.pushAllCalls))
	}

	found := false
	for _, fields := range logger.fields {
		if fields["pushed_count"] == 2 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected pushed count logged before error, got %#v", logger.fields)
	}
}

func TestPushDirectoryHandlerForceForwarded(t *testing.T) {
	syncer := &stubSyncer{}
	handler := NewPushDirectoryHandler(syncer, logging.NoOp(), FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	if err := handler.Execute(context.Background(), PushDirectoryCommand{Force: true}); err != nil {
		t.Fatalf("execute push directory: %v", err)
	}
	if len(syncer.pushAllCalls) != 1 || !syncer.pushAllCalls[0] {
		t.Fatalf("expected forced push all, got %v", syncer.pushAllCalls)
	}
}

func TestPullPageHandlerInvokesSyncer(t *testing.T) {
	syncer := &stubSyncer{
		pullResult: interfaces.PullResult{
			Path:    "getting-started.md",
			PageID:  "4242",
			Version: 7,
		},
	}
	logger := &captureLogger{}
	handler := NewPullPageHandler(syncer, logger, FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	cmd := PullPageCommand{Reference: "4242"}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute pull: %v", err)
	}

	if len(syncer.pullCalls) != 1 {
		t.Fatalf("expected one pull call, got %d", len(syncer.pullCalls))
	}
	call := syncer.pullCalls[0]
	if call.reference != "4242" || call.path != "" {
		t.Fatalf("expected pull args forwarded, got %+v", call)
	}

	found := false
	for _, fields := range logger.fields {
		if fields["path"] == "getting-started.md" && fields["version"] == 7 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected completion fields recorded, got %#v", logger.fields)
	}
}

func TestPullPageHandlerContextCancellation(t *testing.T) {
	syncer := &stubSyncer{}
	handler := NewPullPageHandler(syncer, logging.NoOp(), FeatureGates{
		SyncEnabled: func() bool { return true },
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, PullPageCommand{Reference: "4242"})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
	if len(syncer.pullCalls) != 0 {
		t.Fatalf("expected no pull calls, got %d", len(syncer.pullCalls))
	}
}

package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tablescmd "github.com/goliatone/go-confluence/internal/commands/tables"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

type stubCellUpdater struct {
	calls int
	last  tablescmd.UpdateCellCommand
	err   error
}

func (s *stubCellUpdater) Execute(_ context.Context, msg tablescmd.UpdateCellCommand) error {
	s.calls++
	s.last = msg
	return s.err
}

type stubRowInserter struct {
	calls int
	last  tablescmd.InsertRowCommand
}

func (s *stubRowInserter) Execute(_ context.Context, msg tablescmd.InsertRowCommand) error {
	s.calls++
	s.last = msg
	return nil
}

type stubColumnInserter struct {
	calls int
	last  tablescmd.InsertColumnCommand
}

func (s *stubColumnInserter) Execute(_ context.Context, msg tablescmd.InsertColumnCommand) error {
	s.calls++
	s.last = msg
	return nil
}

type stubRowDeleter struct {
	calls int
	last  tablescmd.DeleteRowCommand
}

func (s *stubRowDeleter) Execute(_ context.Context, msg tablescmd.DeleteRowCommand) error {
	s.calls++
	s.last = msg
	return nil
}

type stubColumnDeleter struct {
	calls int
	last  tablescmd.DeleteColumnCommand
}

func (s *stubColumnDeleter) Execute(_ context.Context, msg tablescmd.DeleteColumnCommand) error {
	s.calls++
	s.last = msg
	return nil
}

type stubLister struct {
	calls     int
	reference string
	summaries []interfaces.TableSummary
	err       error
}

func (s *stubLister) ListTables(_ context.Context, reference string) ([]interfaces.TableSummary, error) {
	s.calls++
	s.reference = reference
	return s.summaries, s.err
}

func withStubResources(t *testing.T, resources *moduleResources) *moduleOptions {
	t.Helper()
	original := moduleBuilder
	captured := &moduleOptions{}
	moduleBuilder = func(opts moduleOptions) (*moduleResources, error) {
		*captured = opts
		return resources, nil
	}
	t.Cleanup(func() {
		moduleBuilder = original
	})
	return captured
}

func TestRunListPrintsSummaries(t *testing.T) {
	lister := &stubLister{
		summaries: []interfaces.TableSummary{
			{Index: 0, HeaderRow: []string{"Service", "Owner"}, RowCount: 3, ColCount: 2, Preview: "api | platform"},
		},
	}
	opts := withStubResources(t, &moduleResources{lister: lister})

	if err := run([]string{"list", "-project", "ops.json", "-reference", "4242"}); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if opts.project != "ops.json" {
		t.Fatalf("expected project flag to reach the builder, got %q", opts.project)
	}
	if lister.calls != 1 {
		t.Fatalf("expected one list call, got %d", lister.calls)
	}
	if lister.reference != "4242" {
		t.Fatalf("expected reference 4242, got %q", lister.reference)
	}
}

func TestRunListRequiresReference(t *testing.T) {
	lister := &stubLister{}
	withStubResources(t, &moduleResources{lister: lister})

	err := run([]string{"list"})
	if err == nil || !strings.Contains(err.Error(), "reference is required") {
		t.Fatalf("expected missing reference error, got %v", err)
	}
	if lister.calls != 0 {
		t.Fatalf("expected no list calls, got %d", lister.calls)
	}
}

func TestRunListPropagatesErrors(t *testing.T) {
	boom := errors.New("page not found")
	lister := &stubLister{err: boom}
	withStubResources(t, &moduleResources{lister: lister})

	err := run([]string{"list", "-reference", "4242"})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected lister error, got %v", err)
	}
}

func TestRunUpdateCell(t *testing.T) {
	updater := &stubCellUpdater{}
	withStubResources(t, &moduleResources{handlers: handlerSet{update: updater}})

	args := []string{
		"update-cell",
		"-reference", "4242",
		"-table", "1",
		"-row", "2",
		"-col", "3",
		"-content", "**done**",
		"-append",
		"-highlight", "green",
	}
	if err := run(args); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if updater.calls != 1 {
		t.Fatalf("expected one update call, got %d", updater.calls)
	}
	msg := updater.last
	if msg.Reference != "4242" || msg.Table != 1 || msg.Row != 2 || msg.Column != 3 {
		t.Fatalf("unexpected cell address: %+v", msg)
	}
	if msg.Content != "**done**" {
		t.Fatalf("expected content to propagate, got %q", msg.Content)
	}
	if !msg.Append {
		t.Fatal("expected append flag to propagate")
	}
	if msg.Highlight != "green" {
		t.Fatalf("expected highlight green, got %q", msg.Highlight)
	}
}

func TestRunUpdateCellPropagatesHandlerErrors(t *testing.T) {
	boom := errors.New("table index 9 out of range")
	updater := &stubCellUpdater{err: boom}
	withStubResources(t, &moduleResources{handlers: handlerSet{update: updater}})

	err := run([]string{"update-cell", "-reference", "4242", "-table", "9", "-content", "x"})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestRunInsertRowSplitsValues(t *testing.T) {
	inserter := &stubRowInserter{}
	withStubResources(t, &moduleResources{handlers: handlerSet{insertRow: inserter}})

	args := []string{
		"insert-row",
		"-reference", "4242",
		"-table", "0",
		"-position", "1",
		"-values", "api, ,platform",
		"-header",
	}
	if err := run(args); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if inserter.calls != 1 {
		t.Fatalf("expected one insert call, got %d", inserter.calls)
	}
	msg := inserter.last
	if msg.Position != 1 {
		t.Fatalf("expected position 1, got %d", msg.Position)
	}
	if !msg.Header {
		t.Fatal("expected header flag to propagate")
	}
	want := []string{"api", "", "platform"}
	if len(msg.Values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(msg.Values))
	}
	for i, value := range want {
		if msg.Values[i] != value {
			t.Fatalf("expected value %q at %d, got %q", value, i, msg.Values[i])
		}
	}
}

func TestRunInsertColumn(t *testing.T) {
	inserter := &stubColumnInserter{}
	withStubResources(t, &moduleResources{handlers: handlerSet{insertCol: inserter}})

	args := []string{
		"insert-column",
		"-reference", "4242",
		"-table", "0",
		"-position", "2",
		"-name", "Status",
		"-default", "pending",
		"-header-style", "background-color: #deebff;",
	}
	if err := run(args); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if inserter.calls != 1 {
		t.Fatalf("expected one insert call, got %d", inserter.calls)
	}
	msg := inserter.last
	if msg.Name != "Status" || msg.DefaultValue != "pending" {
		t.Fatalf("unexpected column payload: %+v", msg)
	}
	if msg.HeaderStyle != "background-color: #deebff;" {
		t.Fatalf("expected header style to propagate, got %q", msg.HeaderStyle)
	}
}

func TestRunDeleteRow(t *testing.T) {
	deleter := &stubRowDeleter{}
	withStubResources(t, &moduleResources{handlers: handlerSet{deleteRow: deleter}})

	if err := run([]string{"delete-row", "-reference", "4242", "-table", "1", "-row", "3"}); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if deleter.calls != 1 {
		t.Fatalf("expected one delete call, got %d", deleter.calls)
	}
	if deleter.last.Table != 1 || deleter.last.Row != 3 {
		t.Fatalf("unexpected delete payload: %+v", deleter.last)
	}
}

func TestRunDeleteColumn(t *testing.T) {
	deleter := &stubColumnDeleter{}
	withStubResources(t, &moduleResources{handlers: handlerSet{deleteCol: deleter}})

	if err := run([]string{"delete-column", "-reference", "4242", "-table", "0", "-col", "2"}); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
	if deleter.calls != 1 {
		t.Fatalf("expected one delete call, got %d", deleter.calls)
	}
	if deleter.last.Column != 2 {
		t.Fatalf("expected column 2, got %d", deleter.last.Column)
	}
}

func TestRunMissingSubcommand(t *testing.T) {
	err := run(nil)
	if err == nil || !strings.Contains(err.Error(), "missing subcommand") {
		t.Fatalf("expected missing subcommand error, got %v", err)
	}
}

func TestRunUnknownSubcommand(t *testing.T) {
	err := run([]string{"truncate"})
	if err == nil || !strings.Contains(err.Error(), `unknown subcommand "truncate"`) {
		t.Fatalf("expected unknown subcommand error, got %v", err)
	}
}

func TestRunUpdateCellHandlerMissing(t *testing.T) {
	withStubResources(t, &moduleResources{})

	err := run([]string{"update-cell", "-reference", "4242", "-content", "x"})
	if err == nil || !strings.Contains(err.Error(), "update-cell handler not configured") {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}

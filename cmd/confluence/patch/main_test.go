package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-confluence/cmd/confluence/internal/bootstrap"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

type stubEditor struct {
	patchCalls     int
	patchReference string
	patchOld       string
	patchNew       string
}

func (s *stubEditor) Patch(_ context.Context, reference, oldFragment, newFragment string) (interfaces.PatchResult, error) {
	s.patchCalls++
	s.patchReference = reference
	s.patchOld = oldFragment
	s.patchNew = newFragment
	return interfaces.PatchResult{PageID: "4242", Version: 3, Matches: 1}, nil
}

func (s *stubEditor) ListTables(context.Context, string) ([]interfaces.TableSummary, error) {
	return nil, nil
}

func (s *stubEditor) UpdateCell(context.Context, string, int, int, int, string, interfaces.CellUpdate) (interfaces.TableEditResult, error) {
	return interfaces.TableEditResult{}, nil
}

func (s *stubEditor) InsertRow(context.Context, string, int, int, []string, bool, []interfaces.CellStyle) (interfaces.TableEditResult, error) {
	return interfaces.TableEditResult{}, nil
}

func (s *stubEditor) InsertColumn(context.Context, string, int, int, string, string, string) (interfaces.TableEditResult, error) {
	return interfaces.TableEditResult{}, nil
}

func (s *stubEditor) DeleteRow(context.Context, string, int, int) (interfaces.TableEditResult, error) {
	return interfaces.TableEditResult{}, nil
}

func (s *stubEditor) DeleteColumn(context.Context, string, int, int) (interfaces.TableEditResult, error) {
	return interfaces.TableEditResult{}, nil
}

func (s *stubEditor) UploadAttachment(context.Context, string, string) (interfaces.AttachmentResult, error) {
	return interfaces.AttachmentResult{}, nil
}

func withStubEditor(t *testing.T) *stubEditor {
	t.Helper()
	original := moduleBuilder
	editor := &stubEditor{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Editor: editor, Logger: logging.NoOp()}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })
	return editor
}

func TestRunPatchReplacesFragment(t *testing.T) {
	editor := withStubEditor(t)

	if err := runPatch([]string{
		"-reference", "4242",
		"-old", "deprecated endpoint",
		"-new", "current endpoint",
	}); err != nil {
		t.Fatalf("runPatch returned error: %v", err)
	}
	if editor.patchCalls != 1 {
		t.Fatalf("expected patch to be called once, got %d", editor.patchCalls)
	}
	if editor.patchReference != "4242" {
		t.Fatalf("expected reference 4242, got %s", editor.patchReference)
	}
	if editor.patchOld != "deprecated endpoint" || editor.patchNew != "current endpoint" {
		t.Fatalf("expected fragments to propagate, got %q -> %q", editor.patchOld, editor.patchNew)
	}
}

func TestRunPatchReadsFragmentFiles(t *testing.T) {
	editor := withStubEditor(t)

	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(oldPath, []byte("<p>v1 endpoint</p>"), 0o644); err != nil {
		t.Fatalf("write old fragment: %v", err)
	}
	newPath := filepath.Join(dir, "new.txt")
	if err := os.WriteFile(newPath, []byte("<p>v2 endpoint</p>"), 0o644); err != nil {
		t.Fatalf("write new fragment: %v", err)
	}

	if err := runPatch([]string{
		"-reference", "4242",
		"-old-file", oldPath,
		"-new-file", newPath,
	}); err != nil {
		t.Fatalf("runPatch returned error: %v", err)
	}
	if editor.patchOld != "<p>v1 endpoint</p>" {
		t.Fatalf("expected old fragment from file, got %q", editor.patchOld)
	}
	if editor.patchNew != "<p>v2 endpoint</p>" {
		t.Fatalf("expected new fragment from file, got %q", editor.patchNew)
	}
}

func TestRunPatchRequiresOldFragment(t *testing.T) {
	withStubEditor(t)

	err := runPatch([]string{"-reference", "4242"})
	if err == nil || !strings.Contains(err.Error(), "old fragment is required") {
		t.Fatalf("expected old fragment error, got %v", err)
	}
}

package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-confluence"
	"github.com/goliatone/go-confluence/client"
	"github.com/goliatone/go-confluence/internal/validation"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	t.Setenv(client.EnvBaseURL, "")
	t.Setenv(client.EnvUsername, "svc-docs")
	t.Setenv(client.EnvAPIToken, "tok-456")
	return Options{
		BaseURL:         "https://wiki.example.com",
		SpaceKey:        "DOCS",
		CredentialsFile: filepath.Join(t.TempDir(), "absent"),
	}
}

func TestBuildModuleConfiguresEditor(t *testing.T) {
	module, err := BuildModule(testOptions(t))
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() {
		if cerr := module.Close(); cerr != nil {
			t.Fatalf("close module: %v", cerr)
		}
	})

	if module.Module == nil {
		t.Fatal("expected module to be initialised")
	}
	if module.Editor == nil {
		t.Fatal("expected page editor to be configured")
	}
	if module.Syncer != nil {
		t.Fatal("expected syncer to stay nil without the sync option")
	}
	if module.Logger == nil {
		t.Fatal("expected logger to be configured")
	}
	if !module.CommandsEnabled() {
		t.Fatal("expected commands feature to be enabled")
	}
	if module.SyncEnabled() {
		t.Fatal("expected sync feature to be disabled")
	}
}

func TestBuildModuleEnablesSync(t *testing.T) {
	opts := testOptions(t)
	opts.Sync = true
	opts.ContentDir = t.TempDir()
	opts.DatabaseDSN = fmt.Sprintf("file:bootstrap_sync_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())

	module, err := BuildModule(opts)
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() {
		if cerr := module.Close(); cerr != nil {
			t.Fatalf("close module: %v", cerr)
		}
	})

	if module.Syncer == nil {
		t.Fatal("expected syncer to be configured")
	}
	if !module.SyncEnabled() {
		t.Fatal("expected sync feature to be enabled")
	}
}

func TestBuildModuleRequiresBaseURL(t *testing.T) {
	opts := testOptions(t)
	opts.BaseURL = ""

	if _, err := BuildModule(opts); !errors.Is(err, confluence.ErrClientBaseURLRequired) {
		t.Fatalf("expected ErrClientBaseURLRequired, got %v", err)
	}
}

func TestBuildModuleRejectsInvalidProjectFile(t *testing.T) {
	opts := testOptions(t)
	opts.ProjectFile = writeProjectFile(t, `{"base_url": "https://wiki.example.com", "spce": "DOCS"}`)

	if _, err := BuildModule(opts); !errors.Is(err, validation.ErrProjectValidation) {
		t.Fatalf("expected ErrProjectValidation, got %v", err)
	}
}

func TestBuildModuleAppliesProjectFile(t *testing.T) {
	opts := testOptions(t)
	opts.BaseURL = ""
	opts.SpaceKey = ""
	opts.ProjectFile = writeProjectFile(t, `{
		"base_url": "https://wiki.example.com",
		"space": "OPS",
		"timeout_seconds": 45
	}`)

	module, err := BuildModule(opts)
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() {
		if cerr := module.Close(); cerr != nil {
			t.Fatalf("close module: %v", cerr)
		}
	})

	cfg := module.Module.Container().Config
	if cfg.Client.SpaceKey != "OPS" {
		t.Fatalf("expected space OPS, got %q", cfg.Client.SpaceKey)
	}
	if cfg.Client.Timeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %v", cfg.Client.Timeout)
	}
}

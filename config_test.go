package confluence_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-confluence"
)

func TestConfigValidateRequiresBaseURL(t *testing.T) {
	cfg := confluence.DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, confluence.ErrClientBaseURLRequired) {
		t.Fatalf("expected ErrClientBaseURLRequired, got %v", err)
	}
}

func TestConfigValidateRejectsMalformedBaseURL(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Client.BaseURL = "ftp://wiki.example.com"

	if err := cfg.Validate(); !errors.Is(err, confluence.ErrClientBaseURLInvalid) {
		t.Fatalf("expected ErrClientBaseURLInvalid, got %v", err)
	}
}

func TestConfigValidateSyncRequiresFeature(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Client.BaseURL = "https://wiki.example.com"
	cfg.Sync.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, confluence.ErrSyncFeatureRequired) {
		t.Fatalf("expected ErrSyncFeatureRequired, got %v", err)
	}
}

func TestConfigValidateSyncRequiresContentDir(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Client.BaseURL = "https://wiki.example.com"
	cfg.Features.Sync = true
	cfg.Sync.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, confluence.ErrSyncContentDirRequired) {
		t.Fatalf("expected ErrSyncContentDirRequired, got %v", err)
	}
}

func TestConfigValidateRepositoryCacheRequiresCache(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Client.BaseURL = "https://wiki.example.com"
	cfg.Cache.Enabled = false
	cfg.Features.RepositoryCache = true

	if err := cfg.Validate(); !errors.Is(err, confluence.ErrRepositoryCacheRequiresCache) {
		t.Fatalf("expected ErrRepositoryCacheRequiresCache, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Client.BaseURL = "https://wiki.example.com"
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, confluence.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_AllowsDisabledClientWithoutBaseURL(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Enabled = false

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

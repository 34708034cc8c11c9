package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrClientBaseURLRequired indicates the REST client has no instance to talk to.
var ErrClientBaseURLRequired = errors.New("confluence config: client base url is required")

// ErrClientBaseURLInvalid indicates the base url does not parse as http(s).
var ErrClientBaseURLInvalid = errors.New("confluence config: client base url is invalid")

// ErrClientTimeoutInvalid keeps request timeouts zero or positive.
var ErrClientTimeoutInvalid = errors.New("confluence config: client timeout must be zero or positive")

// ErrClientRetriesInvalid keeps the retry budget zero or positive.
var ErrClientRetriesInvalid = errors.New("confluence config: client retries must be zero or positive")

// ErrMacroNameRequired rejects blank diagram macro names.
var ErrMacroNameRequired = errors.New("confluence config: macro name is required")

// ErrRepositoryCacheRequiresCache ensures the repository cache only builds when caching is enabled.
var ErrRepositoryCacheRequiresCache = errors.New("confluence config: repository cache feature requires cache to be enabled")

var ErrResolveCacheSizeInvalid = errors.New("confluence config: resolve cache size must be zero or positive")
var ErrSyncFeatureRequired = errors.New("confluence config: sync feature must be enabled to configure sync")
var ErrSyncContentDirRequired = errors.New("confluence config: sync content directory is required when sync is enabled")
var ErrSyncDatabaseRequired = errors.New("confluence config: sync database dsn is required when sync is enabled")
var ErrLoggingProviderRequired = errors.New("confluence config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("confluence config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("confluence config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("confluence config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Client   ClientConfig
	Macros   MacroConfig
	Cache    CacheConfig
	Sync     SyncConfig
	Commands CommandsConfig
	Features Features
	Logging  LoggingConfig
}

// ClientConfig captures connection settings for the Confluence REST client.
// Routes optionally overrides the endpoint layout; when nil the client builds
// the standard REST route set from BaseURL.
type ClientConfig struct {
	BaseURL         string
	SpaceKey        string
	CredentialsFile string
	Timeout         time.Duration
	MaxRetries      int
	UserAgent       string
	Routes          *urlkit.Config
}

// MacroConfig names the storage macros used for fenced diagram blocks.
type MacroConfig struct {
	Mermaid  string
	PlantUML string
}

// CacheConfig captures cache behaviour toggles. ResolveSize bounds the page
// resolution cache.
type CacheConfig struct {
	Enabled     bool
	DefaultTTL  time.Duration
	ResolveSize int
}

// SyncConfig captures filesystem and ledger behaviour for markdown sync.
type SyncConfig struct {
	Enabled     bool
	DatabaseDSN string
	ContentDir  string
	Pattern     string
	Recursive   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// Features toggles module functionality.
type Features struct {
	Sync            bool
	Commands        bool
	RepositoryCache bool
	Logger          bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a hosted Cloud instance.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Client: ClientConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			UserAgent:  "go-confluence",
		},
		Macros: MacroConfig{
			Mermaid:  "mermaid-macro",
			PlantUML: "plantuml",
		},
		Cache: CacheConfig{
			Enabled:     true,
			DefaultTTL:  time.Minute,
			ResolveSize: 1024,
		},
		Sync: SyncConfig{
			DatabaseDSN: "file:confluence-sync.db?cache=shared&_fk=1",
			Pattern:     "*.md",
			Recursive:   true,
		},
		Commands: CommandsConfig{},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Enabled {
		base := strings.TrimSpace(cfg.Client.BaseURL)
		if base == "" {
			return ErrClientBaseURLRequired
		}
		parsed, err := url.Parse(base)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrClientBaseURLInvalid, base)
		}
	}
	if cfg.Client.Timeout < 0 {
		return ErrClientTimeoutInvalid
	}
	if cfg.Client.MaxRetries < 0 {
		return ErrClientRetriesInvalid
	}
	if strings.TrimSpace(cfg.Macros.Mermaid) == "" {
		return fmt.Errorf("%w: mermaid", ErrMacroNameRequired)
	}
	if strings.TrimSpace(cfg.Macros.PlantUML) == "" {
		return fmt.Errorf("%w: plantuml", ErrMacroNameRequired)
	}
	if cfg.Features.RepositoryCache && !cfg.Cache.Enabled {
		return ErrRepositoryCacheRequiresCache
	}
	if cfg.Cache.ResolveSize < 0 {
		return ErrResolveCacheSizeInvalid
	}
	if cfg.Sync.Enabled {
		if !cfg.Features.Sync {
			return ErrSyncFeatureRequired
		}
		if strings.TrimSpace(cfg.Sync.ContentDir) == "" {
			return ErrSyncContentDirRequired
		}
		if strings.TrimSpace(cfg.Sync.DatabaseDSN) == "" {
			return ErrSyncDatabaseRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-confluence"
	"github.com/goliatone/go-confluence/internal/validation"
)

// loadProject reads and validates the project file. An explicit path must
// exist; the default path is optional.
func loadProject(path string) (map[string]any, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultProjectFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read project file %s: %w", path, err)
	}
	document, err := validation.ValidateProjectBytes(data)
	if err != nil {
		return nil, fmt.Errorf("project file %s: %w", path, err)
	}
	return document, nil
}

// applyProject copies recognized project keys onto the runtime config.
// Schema validation upstream guarantees the value shapes.
func applyProject(cfg *confluence.Config, document map[string]any) {
	if value, ok := stringKey(document, "base_url"); ok {
		cfg.Client.BaseURL = value
	}
	if value, ok := stringKey(document, "space"); ok {
		cfg.Client.SpaceKey = value
	}
	if value, ok := stringKey(document, "credentials_file"); ok {
		cfg.Client.CredentialsFile = value
	}
	if value, ok := intKey(document, "timeout_seconds"); ok {
		cfg.Client.Timeout = time.Duration(value) * time.Second
	}
	if value, ok := intKey(document, "max_retries"); ok {
		cfg.Client.MaxRetries = value
	}
	if value, ok := stringKey(document, "user_agent"); ok {
		cfg.Client.UserAgent = value
	}
	if section, ok := mapKey(document, "macros"); ok {
		if value, ok := stringKey(section, "mermaid"); ok {
			cfg.Macros.Mermaid = value
		}
		if value, ok := stringKey(section, "plantuml"); ok {
			cfg.Macros.PlantUML = value
		}
	}
	if section, ok := mapKey(document, "cache"); ok {
		if value, ok := boolKey(section, "enabled"); ok {
			cfg.Cache.Enabled = value
		}
		if value, ok := intKey(section, "ttl_seconds"); ok {
			cfg.Cache.DefaultTTL = time.Duration(value) * time.Second
		}
		if value, ok := intKey(section, "resolve_size"); ok {
			cfg.Cache.ResolveSize = value
		}
	}
	if section, ok := mapKey(document, "sync"); ok {
		if value, ok := stringKey(section, "database"); ok {
			cfg.Sync.DatabaseDSN = value
		}
		if value, ok := stringKey(section, "content_dir"); ok {
			cfg.Sync.ContentDir = value
		}
		if value, ok := stringKey(section, "pattern"); ok {
			cfg.Sync.Pattern = value
		}
		if value, ok := boolKey(section, "recursive"); ok {
			cfg.Sync.Recursive = value
		}
	}
	if section, ok := mapKey(document, "logging"); ok {
		if value, ok := stringKey(section, "provider"); ok {
			cfg.Logging.Provider = value
		}
		if value, ok := stringKey(section, "level"); ok {
			cfg.Logging.Level = value
		}
		if value, ok := stringKey(section, "format"); ok {
			cfg.Logging.Format = value
		}
		if value, ok := boolKey(section, "add_source"); ok {
			cfg.Logging.AddSource = value
		}
		if values, ok := stringsKey(section, "focus"); ok {
			cfg.Logging.Focus = values
		}
	}
}

func mapKey(document map[string]any, key string) (map[string]any, bool) {
	value, ok := document[key].(map[string]any)
	return value, ok
}

func stringKey(document map[string]any, key string) (string, bool) {
	value, ok := document[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func boolKey(document map[string]any, key string) (bool, bool) {
	value, ok := document[key].(bool)
	return value, ok
}

// intKey reads a numeric key. JSON decoding delivers numbers as float64.
func intKey(document map[string]any, key string) (int, bool) {
	value, ok := document[key].(float64)
	if !ok {
		return 0, false
	}
	return int(value), true
}

func stringsKey(document map[string]any, key string) ([]string, bool) {
	raw, ok := document[key].([]any)
	if !ok {
		return nil, false
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if value, ok := item.(string); ok {
			values = append(values, value)
		}
	}
	return values, len(values) > 0
}

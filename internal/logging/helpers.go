package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-confluence/pkg/interfaces"
)

const (
	fieldPageID   = "page_id"
	fieldSpaceKey = "space"
	fieldAction   = "sync_action"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithPageContext enriches the provided logger with common page fields such
// as page id, space key, and sync action. Empty values are ignored.
func WithPageContext(logger interfaces.Logger, pageID, space, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(space); trimmed != "" {
		fields[fieldSpaceKey] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

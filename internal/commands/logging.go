package commands

import (
	"strings"

	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

const commandModuleRoot = "confluence.commands"

// CommandLogger returns a logger scoped to one command group (pages, tables,
// sync). The group travels as a structured field so executions from different
// groups line up in aggregated logs.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{"command_group": name})
}

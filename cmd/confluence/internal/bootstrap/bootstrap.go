package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-confluence"
	"github.com/goliatone/go-confluence/client"
	"github.com/goliatone/go-confluence/internal/di"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// DefaultProjectFile is the project file looked up in the working directory
// when no explicit path is supplied.
const DefaultProjectFile = "confluence.json"

// Options captures configuration for confluence CLI bootstraps. Flag values
// override the project file, which overrides the defaults.
type Options struct {
	ProjectFile     string
	BaseURL         string
	SpaceKey        string
	CredentialsFile string
	ContentDir      string
	Pattern         string
	DatabaseDSN     string
	Sync            bool
	LoggerProvider  interfaces.LoggerProvider
}

// Module wraps the confluence module and the collaborators CLI verbs drive.
// Syncer is nil unless Options.Sync enabled the sync feature.
type Module struct {
	Module *confluence.Module
	Editor interfaces.PageEditor
	Syncer interfaces.DocumentSyncer
	Logger interfaces.Logger
}

// BuildModule constructs a confluence module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := confluence.DefaultConfig()
	cfg.Features.Commands = true
	cfg.Commands.Enabled = true
	cfg.Features.Logger = true

	document, err := loadProject(opts.ProjectFile)
	if err != nil {
		return nil, err
	}
	if document != nil {
		applyProject(&cfg, document)
	}

	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Client.BaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SpaceKey); trimmed != "" {
		cfg.Client.SpaceKey = trimmed
	}
	if trimmed := strings.TrimSpace(opts.CredentialsFile); trimmed != "" {
		cfg.Client.CredentialsFile = trimmed
	}
	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Sync.ContentDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Sync.Pattern = trimmed
	}
	if trimmed := strings.TrimSpace(opts.DatabaseDSN); trimmed != "" {
		cfg.Sync.DatabaseDSN = trimmed
	}
	if opts.Sync {
		cfg.Features.Sync = true
		cfg.Sync.Enabled = true
	}

	// The base URL may come from the environment alone; merge it before
	// Validate runs so file-less setups still pass.
	if strings.TrimSpace(cfg.Client.BaseURL) == "" {
		cfg.Client.BaseURL = strings.TrimSpace(os.Getenv(client.EnvBaseURL))
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := confluence.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise confluence module: %w", err)
	}

	editor := module.Editor()
	if editor == nil {
		return nil, fmt.Errorf("page editor not configured; check the client settings")
	}

	logger := logging.CommandsLogger(module.LoggerProvider())

	return &Module{
		Module: module,
		Editor: editor,
		Syncer: module.Syncer(),
		Logger: logger,
	}, nil
}

// Close releases resources the underlying module holds open.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// CommandsEnabled reports whether the commands feature is switched on. A
// bootstrap without runtime configuration attached reports enabled so stubbed
// modules keep their handlers live.
func (m *Module) CommandsEnabled() bool {
	if m == nil {
		return false
	}
	if m.Module == nil || m.Module.Container() == nil {
		return true
	}
	cfg := m.Module.Container().Config
	return cfg.Features.Commands && cfg.Commands.Enabled
}

// SyncEnabled reports whether the sync feature is switched on.
func (m *Module) SyncEnabled() bool {
	if m == nil {
		return false
	}
	if m.Module == nil || m.Module.Container() == nil {
		return m.Syncer != nil
	}
	cfg := m.Module.Container().Config
	return cfg.Features.Sync && cfg.Sync.Enabled
}

// SplitCells parses a comma separated list of cell values. Entries keep their
// position, so an empty entry stays an empty cell.
func SplitCells(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

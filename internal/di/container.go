package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-confluence/internal/client"
	"github.com/goliatone/go-confluence/internal/editor"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/internal/logging/console"
	"github.com/goliatone/go-confluence/internal/logging/gologger"
	"github.com/goliatone/go-confluence/internal/runtimeconfig"
	"github.com/goliatone/go-confluence/internal/storage"
	syncsvc "github.com/goliatone/go-confluence/internal/sync"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// Container wires module dependencies around one remote Confluence space.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	credentials    *client.Credentials

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	apiClient *client.Client
	resolver  *client.Resolver
	editorSvc interfaces.PageEditor
	syncerSvc interfaces.DocumentSyncer
	store     *syncsvc.Store
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithHTTPClient overrides the HTTP client used for REST calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Container) {
		c.httpClient = httpClient
	}
}

// WithCredentials supplies credentials directly, skipping file and
// environment lookup.
func WithCredentials(creds client.Credentials) Option {
	return func(c *Container) {
		c.credentials = &creds
	}
}

// WithClient overrides the default REST client binding.
func WithClient(apiClient *client.Client) Option {
	return func(c *Container) {
		c.apiClient = apiClient
	}
}

// WithResolver overrides the default page reference resolver.
func WithResolver(resolver *client.Resolver) Option {
	return func(c *Container) {
		c.resolver = resolver
	}
}

// WithBunDB supplies an open ledger database. The caller keeps ownership and
// must ensure the sync schema exists.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache collaborators.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithEditor overrides the default page editor binding.
func WithEditor(svc interfaces.PageEditor) Option {
	return func(c *Container) {
		c.editorSvc = svc
	}
}

// WithSyncer overrides the default document syncer binding.
func WithSyncer(svc interfaces.DocumentSyncer) Option {
	return func(c *Container) {
		c.syncerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureClient(); err != nil {
		return nil, err
	}
	c.configureResolver()
	if err := c.configureEditor(); err != nil {
		return nil, err
	}
	if err := c.configureSync(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		return fmt.Errorf("di: unknown logging provider %q", c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.RepositoryCache || !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureClient() error {
	if c.apiClient != nil || !c.Config.Enabled {
		return nil
	}

	var creds client.Credentials
	if c.credentials != nil {
		creds = *c.credentials
	} else {
		resolved, err := client.ResolveCredentials(c.Config.Client.CredentialsFile)
		if err != nil {
			return err
		}
		creds = resolved
	}

	apiClient, err := client.New(client.Config{
		BaseURL:     c.Config.Client.BaseURL,
		Credentials: creds,
		HTTPClient:  c.httpClient,
		Timeout:     c.Config.Client.Timeout,
		MaxRetries:  c.Config.Client.MaxRetries,
		UserAgent:   c.Config.Client.UserAgent,
		Routes:      c.Config.Client.Routes,
		Logger:      logging.ClientLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.apiClient = apiClient
	return nil
}

func (c *Container) configureResolver() {
	if c.resolver != nil || c.apiClient == nil {
		return
	}
	size := 0
	if c.Config.Cache.Enabled {
		size = c.Config.Cache.ResolveSize
	}
	c.resolver = client.NewResolver(c.apiClient, size)
}

func (c *Container) configureEditor() error {
	if c.editorSvc != nil || c.apiClient == nil {
		return nil
	}
	svc, err := editor.NewService(editor.Config{
		Client:   c.apiClient,
		Resolver: c.resolver,
		Macros:   c.macroNames(),
		Logger:   logging.EditorLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.editorSvc = svc
	return nil
}

func (c *Container) configureSync() error {
	if c.syncerSvc != nil || c.apiClient == nil {
		return nil
	}
	if !c.Config.Features.Sync || !c.Config.Sync.Enabled {
		return nil
	}

	db := c.bunDB
	if db == nil {
		opened, err := syncsvc.OpenDatabase(context.Background(), c.Config.Sync.DatabaseDSN)
		if err != nil {
			return err
		}
		db = opened
		c.bunDB = opened
		c.ownsDB = true
	}

	c.store = syncsvc.NewStoreWithCache(db, c.cacheService, c.keySerializer)

	svc, err := syncsvc.NewService(syncsvc.Config{
		Client:     c.apiClient,
		Resolver:   c.resolver,
		Store:      c.store,
		ContentDir: c.Config.Sync.ContentDir,
		SpaceKey:   c.Config.Client.SpaceKey,
		Pattern:    c.Config.Sync.Pattern,
		Recursive:  c.Config.Sync.Recursive,
		Macros:     c.macroNames(),
		Logger:     logging.SyncLogger(c.loggerProvider),
	})
	if err != nil {
		return err
	}
	c.syncerSvc = svc
	return nil
}

func (c *Container) macroNames() storage.MacroNames {
	return storage.MacroNames{
		Mermaid:  c.Config.Macros.Mermaid,
		PlantUML: c.Config.Macros.PlantUML,
	}
}

// LoggerProvider exposes the configured logger provider, which is nil when
// logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	if c == nil {
		return nil
	}
	return c.loggerProvider
}

// Client exposes the REST client, which is nil when the module is disabled.
func (c *Container) Client() *client.Client {
	if c == nil {
		return nil
	}
	return c.apiClient
}

// Resolver exposes the page reference resolver.
func (c *Container) Resolver() *client.Resolver {
	if c == nil {
		return nil
	}
	return c.resolver
}

// Editor exposes the page editor service.
func (c *Container) Editor() interfaces.PageEditor {
	if c == nil {
		return nil
	}
	return c.editorSvc
}

// Syncer exposes the document sync service, which is nil unless the sync
// feature is enabled.
func (c *Container) Syncer() interfaces.DocumentSyncer {
	if c == nil {
		return nil
	}
	return c.syncerSvc
}

// Store exposes the sync ledger store backing the syncer.
func (c *Container) Store() *syncsvc.Store {
	if c == nil {
		return nil
	}
	return c.store
}

// DB exposes the ledger database handle.
func (c *Container) DB() *bun.DB {
	if c == nil {
		return nil
	}
	return c.bunDB
}

// Close releases resources the container opened itself. Injected databases
// stay open.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	return c.bunDB.Close()
}

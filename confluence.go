package confluence

import (
	"github.com/goliatone/go-confluence/internal/client"
	"github.com/goliatone/go-confluence/internal/di"
	syncsvc "github.com/goliatone/go-confluence/internal/sync"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	"github.com/uptrace/bun"
)

// PageEditor exports the page editing contract for consumers of the confluence package.
type PageEditor = interfaces.PageEditor

// DocumentSyncer exports the document sync contract.
type DocumentSyncer = interfaces.DocumentSyncer

// LoggerProvider exports the logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// Client exports the Confluence REST client.
type Client = client.Client

// Resolver exports the page reference resolver.
type Resolver = client.Resolver

// Credentials exports the REST credential set consumed by the client.
type Credentials = client.Credentials

// SyncStore exports the sync ledger store.
type SyncStore = syncsvc.Store

// Module represents the top level Confluence runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a Confluence module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Client returns the configured REST client.
func (m *Module) Client() *Client {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Client()
}

// Resolver returns the page reference resolver backing the services.
func (m *Module) Resolver() *Resolver {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Resolver()
}

// Editor returns the configured page editor.
func (m *Module) Editor() PageEditor {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Editor()
}

// Syncer returns the configured document syncer when the sync feature is enabled.
func (m *Module) Syncer() DocumentSyncer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Syncer()
}

// Store returns the sync ledger store backing the syncer.
func (m *Module) Store() *SyncStore {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Store()
}

// DB returns the ledger database handle.
func (m *Module) DB() *bun.DB {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DB()
}

// LoggerProvider returns the logger provider used by the module services.
func (m *Module) LoggerProvider() LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

// Close releases resources the module opened itself, such as the ledger database.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Package sync re-exports the markdown push/pull workflow and its ledger.
package sync

import (
	"context"

	"github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	internalsync "github.com/goliatone/go-confluence/internal/sync"
)

// Re-exported errors from the internal sync package.
var (
	ErrRecordNotFound = internalsync.ErrRecordNotFound
	ErrConflict       = internalsync.ErrConflict
	ErrPageMetadata   = internalsync.ErrPageMetadata
)

// Sync states reported by Status.
const (
	StatusInSync         = internalsync.StatusInSync
	StatusLocalModified  = internalsync.StatusLocalModified
	StatusRemoteModified = internalsync.StatusRemoteModified
	StatusConflict       = internalsync.StatusConflict
	StatusUntracked      = internalsync.StatusUntracked
	StatusMissing        = internalsync.StatusMissing
)

// Re-exported types from the internal sync package.
type (
	Config              = internalsync.Config
	Service             = internalsync.Service
	Store               = internalsync.Store
	Record              = internalsync.Record
	Document            = internalsync.Document
	Meta                = internalsync.Meta
	RecordNotFoundError = internalsync.RecordNotFoundError
	ConflictError       = internalsync.ConflictError
	MetadataError       = internalsync.MetadataError
)

// NewService builds the push/pull service from cfg.
func NewService(cfg Config) (*Service, error) {
	return internalsync.NewService(cfg)
}

// NewStore builds an uncached ledger store.
func NewStore(db *bun.DB) *Store {
	return internalsync.NewStore(db)
}

// NewStoreWithCache builds a ledger store with optional read-through caching.
func NewStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *Store {
	return internalsync.NewStoreWithCache(db, cacheService, keySerializer)
}

// OpenDatabase opens the sqlite-backed ledger at dsn and ensures its schema.
func OpenDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	return internalsync.OpenDatabase(ctx, dsn)
}

// EnsureSchema creates the ledger table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	return internalsync.EnsureSchema(ctx, db)
}

// ParseDocument splits a raw markdown file into frontmatter metadata and body.
func ParseDocument(path string, source []byte) (Document, error) {
	return internalsync.ParseDocument(path, source)
}

// RenderDocument reassembles a document into its on-disk form.
func RenderDocument(doc Document) ([]byte, error) {
	return internalsync.RenderDocument(doc)
}

// ContentHash fingerprints document bytes for drift detection.
func ContentHash(source []byte) string {
	return internalsync.ContentHash(source)
}

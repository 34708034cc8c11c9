package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-confluence/internal/identity"
)

// NewRecordRepository builds the generic bun repository for sync records,
// keyed by path as the natural identifier.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Path
		},
	})
}

// Store persists sync records. It wraps the generic repository with the
// module's error mapping and optional read-through caching.
type Store struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

// NewStore builds an uncached Store.
func NewStore(db *bun.DB) *Store {
	return NewStoreWithCache(db, nil, nil)
}

// NewStoreWithCache builds a Store with optional caching. Passing nil for
// either cache collaborator keeps the repository uncached.
func NewStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *Store {
	return &Store{
		db:   db,
		repo: wrapWithCache(NewRecordRepository(db), cacheService, keySerializer),
	}
}

// Save upserts the record for record.Path, minting a deterministic id from
// the page so repeated syncs of the same page keep one row identity.
func (s *Store) Save(ctx context.Context, record *Record) (*Record, error) {
	if record.ID == uuid.Nil {
		record.ID = identity.PageRecordUUID(record.PageID)
	}
	if record.SyncedAt.IsZero() {
		record.SyncedAt = time.Now().UTC()
	}
	existing, err := s.GetByPath(ctx, record.Path)
	switch {
	case err == nil:
		record.ID = existing.ID
		updated, updateErr := s.repo.Update(ctx, record, repository.UpdateByID(record.ID.String()))
		if updateErr != nil {
			return nil, fmt.Errorf("sync store update: %w", updateErr)
		}
		return updated, nil
	case errors.Is(err, ErrRecordNotFound):
		created, createErr := s.repo.Create(ctx, record)
		if createErr != nil {
			return nil, fmt.Errorf("sync store create: %w", createErr)
		}
		return created, nil
	default:
		return nil, err
	}
}

// GetByPath loads the record tracking a local path.
func (s *Store) GetByPath(ctx context.Context, path string) (*Record, error) {
	record, err := s.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	return record, nil
}

// GetByPageID loads the record tracking a page id.
func (s *Store) GetByPageID(ctx context.Context, pageID string) (*Record, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, pageID)
	}
	if len(records) == 0 {
		return nil, &RecordNotFoundError{Key: pageID}
	}
	return records[0], nil
}

// List returns every tracked record ordered by path.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("path ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("sync store list: %w", err)
	}
	return records, nil
}

// Delete removes the record for a path.
func (s *Store) Delete(ctx context.Context, path string) error {
	record, err := s.GetByPath(ctx, path)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("sync store delete: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &RecordNotFoundError{Key: key}
	}
	return fmt.Errorf("sync store: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:confluence_sync_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestStoreSaveAndGet(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	saved, err := store.Save(ctx, &Record{
		Path:          "docs/runbook.md",
		PageID:        "12345",
		SpaceKey:      "OPS",
		Title:         "Runbook",
		RemoteVersion: 3,
		ContentHash:   "abc",
	})
	if err != nil {
		t.Fatalf("expected save to succeed, got %v", err)
	}
	if saved.ID == uuid.Nil {
		t.Fatal("expected a deterministic id to be assigned")
	}
	if saved.SyncedAt.IsZero() {
		t.Fatal("expected synced_at to be stamped")
	}

	byPath, err := store.GetByPath(ctx, "docs/runbook.md")
	if err != nil {
		t.Fatalf("expected record by path, got %v", err)
	}
	if byPath.PageID != "12345" {
		t.Fatalf("expected page id 12345, got %q", byPath.PageID)
	}

	byPage, err := store.GetByPageID(ctx, "12345")
	if err != nil {
		t.Fatalf("expected record by page id, got %v", err)
	}
	if byPage.Path != "docs/runbook.md" {
		t.Fatalf("expected path docs/runbook.md, got %q", byPage.Path)
	}
}

func TestStoreSaveUpdatesExisting(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	first, err := store.Save(ctx, &Record{Path: "runbook.md", PageID: "12345", RemoteVersion: 1, ContentHash: "a"})
	if err != nil {
		t.Fatalf("expected first save, got %v", err)
	}
	second, err := store.Save(ctx, &Record{Path: "runbook.md", PageID: "12345", RemoteVersion: 2, ContentHash: "b"})
	if err != nil {
		t.Fatalf("expected second save, got %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected stable record id, got %s then %s", first.ID, second.ID)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("expected list, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].RemoteVersion != 2 || records[0].ContentHash != "b" {
		t.Fatalf("expected updated fields, got %+v", records[0])
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.GetByPath(ctx, "absent.md")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	var notFound *RecordNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *RecordNotFoundError, got %T", err)
	}
	if notFound.Key != "absent.md" {
		t.Fatalf("expected key absent.md, got %q", notFound.Key)
	}

	if _, err := store.GetByPageID(ctx, "999"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound by page id, got %v", err)
	}
}

func TestStoreListOrdersByPath(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	for _, path := range []string{"b.md", "a.md", "c.md"} {
		if _, err := store.Save(ctx, &Record{Path: path, PageID: "p-" + path}); err != nil {
			t.Fatalf("expected save %s, got %v", path, err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("expected list, got %v", err)
	}
	var paths []string
	for _, record := range records {
		paths = append(paths, record.Path)
	}
	want := []string{"a.md", "b.md", "c.md"}
	for i, path := range want {
		if paths[i] != path {
			t.Fatalf("expected order %v, got %v", want, paths)
		}
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	if _, err := store.Save(ctx, &Record{Path: "runbook.md", PageID: "12345"}); err != nil {
		t.Fatalf("expected save, got %v", err)
	}
	if err := store.Delete(ctx, "runbook.md"); err != nil {
		t.Fatalf("expected delete, got %v", err)
	}
	if _, err := store.GetByPath(ctx, "runbook.md"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}

	if err := store.Delete(ctx, "runbook.md"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for second delete, got %v", err)
	}
}

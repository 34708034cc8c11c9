package sync

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestOpenDatabaseEnsuresSchema(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dsn := fmt.Sprintf("file:confluence_open_%d?mode=memory&cache=shared&_fk=1", time.Now().UnixNano())
	db, err := OpenDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewStore(db)
	saved, err := store.Save(ctx, &Record{
		Path:     "guides/setup.md",
		PageID:   "4242",
		SpaceKey: "DOCS",
		Title:    "Setup",
	})
	if err != nil {
		t.Fatalf("save record: %v", err)
	}

	loaded, err := store.GetByPath(ctx, "guides/setup.md")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if loaded.ID != saved.ID {
		t.Fatalf("expected id %s, got %s", saved.ID, loaded.ID)
	}
	if loaded.PageID != "4242" {
		t.Fatalf("expected page id 4242, got %s", loaded.PageID)
	}
}

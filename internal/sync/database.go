package sync

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenDatabase opens the sqlite-backed sync ledger at dsn and ensures its
// schema exists. The caller owns the returned handle and must close it.
func OpenDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sync: open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the ledger table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("sync: ensure schema: %w", err)
	}
	return nil
}

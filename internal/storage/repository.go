// Package storage implements the persistence layer over an embedded SQLite
// database: schema management and the account, category, and transaction
// stores. All stores share one process-wide *sql.DB handed to them at
// construction time; the pool is the single source of truth and no in-memory
// state is kept between calls.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store bundles the entity stores around a single connection pool.
type Store struct {
	db *sql.DB

	Accounts     *AccountStore
	Categories   *CategoryStore
	Transactions *TransactionStore
}

// New opens (or creates) the database file at dbPath, ensures the schema and
// the system category exist, and returns the bundled stores.
func New(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	// Foreign keys are a per-connection setting; the DSN pragma applies it
	// to every connection the pool opens.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if err := SeedSystemCategory(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Storage initialized", "path", dbPath)

	return &Store{
		db:           db,
		Accounts:     NewAccountStore(db),
		Categories:   NewCategoryStore(db),
		Transactions: NewTransactionStore(db),
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rowScanner lets scan helpers work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

func boolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	return &nb.Bool
}

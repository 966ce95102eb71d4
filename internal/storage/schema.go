package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/tally/internal/core"
)

// The Ensure* functions are create-if-absent and safe to run on every process
// start. Column names, types, and defaults are the compatibility surface of
// the data file and must not change.

func EnsureAccountsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			current_balance INTEGER,
			institution TEXT,
			display_order INTEGER,
			archived BOOLEAN DEFAULT FALSE,
			include_in_net_worth BOOLEAN DEFAULT TRUE,
			account_number_last4 TEXT
		)`)
	if err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func EnsureCategoriesTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			archived BOOLEAN DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			display_order INTEGER,
			parent_category_id INTEGER REFERENCES categories(id),
			default_discretionary BOOLEAN,
			default_fixed BOOLEAN,
			last_used_date DATETIME,
			is_system_category BOOLEAN DEFAULT FALSE
		)`)
	if err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func EnsureTransactionsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY,
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			date DATE NOT NULL,
			amount INTEGER NOT NULL,
			description TEXT,
			category_id INTEGER REFERENCES categories(id),
			pending BOOLEAN DEFAULT FALSE,
			transaction_type TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			cleared BOOLEAN DEFAULT FALSE,
			reconciled BOOLEAN DEFAULT FALSE,
			import_id TEXT,
			source TEXT,
			payee TEXT,
			original_description TEXT,
			memo TEXT
		)`)
	if err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	return nil
}

// EnsureTransfersTable creates the transfers table linking the two sides of
// an account-to-account movement. Schema only; no operations read or write
// it yet.
func EnsureTransfersTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transfers (
			id INTEGER PRIMARY KEY,
			from_transaction_id INTEGER NOT NULL REFERENCES transactions(id),
			to_transaction_id INTEGER NOT NULL REFERENCES transactions(id),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			transfer_type TEXT,
			auto_created BOOLEAN DEFAULT FALSE
		)`)
	if err != nil {
		return fmt.Errorf("create transfers table: %w", err)
	}
	return nil
}

// EnsureSchema creates all entity tables that do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if err := EnsureAccountsTable(ctx, db); err != nil {
		return err
	}
	if err := EnsureCategoriesTable(ctx, db); err != nil {
		return err
	}
	if err := EnsureTransactionsTable(ctx, db); err != nil {
		return err
	}
	return EnsureTransfersTable(ctx, db)
}

// SeedSystemCategory inserts the protected "Uncategorized" category if no
// system category with that name exists yet. Repeated calls are no-ops.
func SeedSystemCategory(ctx context.Context, db *sql.DB) error {
	var existing int64
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE name = ? AND is_system_category = TRUE",
		core.SystemCategoryName).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check system category: %w", err)
	}

	if existing > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO categories (name, is_system_category, display_order, archived)
		 VALUES (?, TRUE, 0, FALSE)`,
		core.SystemCategoryName)
	if err != nil {
		return fmt.Errorf("seed system category: %w", err)
	}

	slog.InfoContext(ctx, "System category seeded", "name", core.SystemCategoryName)
	return nil
}

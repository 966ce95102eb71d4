package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/tally/internal/core"
)

// AccountStore provides CRUD over accounts. Accounts are never physically
// deleted; Archive marks them inactive and the read operations only return
// active rows.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

const accountColumns = `id, name, type, created_at, updated_at, current_balance,
	institution, display_order, archived, include_in_net_worth, account_number_last4`

// Get returns the active account with the given id, or nil if there is no
// such account or it has been archived.
func (s *AccountStore) Get(ctx context.Context, id int64) (*core.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ? AND archived = FALSE", id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// ListActive returns all non-archived accounts ordered by display_order then
// name. The ordering drives default UI order and is part of the contract.
func (s *AccountStore) ListActive(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE archived = FALSE ORDER BY display_order, name")
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Insert creates a new account and returns its id. The balance is encoded to
// cents, archived starts false, and include_in_net_worth defaults to true
// when the request leaves it unset.
func (s *AccountStore) Insert(ctx context.Context, req core.CreateAccountRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	includeInNetWorth := true
	if req.IncludeInNetWorth != nil {
		includeInNetWorth = *req.IncludeInNetWorth
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (name, type, institution, current_balance, display_order, include_in_net_worth, account_number_last4)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.Name, req.AccountType, req.Institution, core.ToCentsPtr(req.CurrentBalance),
		req.DisplayOrder, includeInNetWorth, req.AccountNumberLast4)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert account id: %w", err)
	}

	slog.InfoContext(ctx, "Account created", "id", id, "name", req.Name, "type", req.AccountType)
	return id, nil
}

// Update overwrites every user-settable field of an active account and
// refreshes updated_at. A missing or archived target is a successful no-op so
// callers can retry idempotently.
func (s *AccountStore) Update(ctx context.Context, id int64, req core.CreateAccountRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	includeInNetWorth := true
	if req.IncludeInNetWorth != nil {
		includeInNetWorth = *req.IncludeInNetWorth
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = ?, type = ?, institution = ?, current_balance = ?,
		     display_order = ?, include_in_net_worth = ?, account_number_last4 = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND archived = FALSE`,
		req.Name, req.AccountType, req.Institution, core.ToCentsPtr(req.CurrentBalance),
		req.DisplayOrder, includeInNetWorth, req.AccountNumberLast4, id)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		slog.DebugContext(ctx, "No active account to update", "id", id)
	}
	return nil
}

// Archive soft-deletes an active account. Archiving a missing or already
// archived account is a successful no-op.
func (s *AccountStore) Archive(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET archived = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND archived = FALSE",
		id)
	if err != nil {
		return fmt.Errorf("archive account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive account rows affected: %w", err)
	}
	if affected == 0 {
		slog.DebugContext(ctx, "No active account to archive", "id", id)
	} else {
		slog.InfoContext(ctx, "Account archived", "id", id)
	}
	return nil
}

func scanAccount(row rowScanner) (*core.Account, error) {
	var (
		account      core.Account
		balanceCents sql.NullInt64
		institution  sql.NullString
		displayOrder sql.NullInt64
		last4        sql.NullString
	)
	err := row.Scan(&account.ID, &account.Name, &account.AccountType,
		&account.CreatedAt, &account.UpdatedAt, &balanceCents, &institution,
		&displayOrder, &account.Archived, &account.IncludeInNetWorth, &last4)
	if err != nil {
		return nil, err
	}

	account.CurrentBalance = core.FromCentsPtr(int64Ptr(balanceCents))
	account.Institution = stringPtr(institution)
	account.DisplayOrder = int64Ptr(displayOrder)
	account.AccountNumberLast4 = stringPtr(last4)
	return &account, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/tally/internal/core"
)

// Manual entries always carry these tags; imported data would set its own.
const (
	manualTransactionType = "expense"
	manualSource          = "manual"
)

// TransactionStore is the append-mostly ledger of money movements. There is
// no update or delete here; corrections are a higher-level concern.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

const transactionColumns = `id, account_id, date, amount, description, category_id,
	pending, cleared, transaction_type, created_at, reconciled, import_id, source,
	payee, original_description, memo`

// Insert records one money movement and returns its id. The amount is encoded
// to cents. References are only checked by the schema's foreign keys, so a
// transaction against an archived account or category is still accepted.
func (s *TransactionStore) Insert(ctx context.Context, req core.CreateTransactionRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	amountCents := core.ToCents(req.Amount)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (account_id, date, amount, description, payee, memo, category_id, pending, cleared, transaction_type, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.AccountID, req.Date, amountCents, req.Description,
		req.Payee, req.Memo, req.CategoryID, req.Pending, req.Cleared,
		manualTransactionType, manualSource)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", id, "account_id", req.AccountID, "date", req.Date,
		"amount_cents", amountCents)
	return id, nil
}

// ListByAccount returns one page of an account's transactions, newest first:
// date descending with id descending breaking same-day ties. Callers supply
// limit and offset; there is no server-side cap.
func (s *TransactionStore) ListByAccount(ctx context.Context, accountID int64, limit, offset int64) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE account_id = ?
		 ORDER BY date DESC, id DESC
		 LIMIT ? OFFSET ?`,
		accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row rowScanner) (*core.Transaction, error) {
	var (
		txn         core.Transaction
		amountCents int64
		description sql.NullString
		categoryID  sql.NullInt64
		importID    sql.NullString
		source      sql.NullString
		payee       sql.NullString
		originalDes sql.NullString
		memo        sql.NullString
	)
	err := row.Scan(&txn.ID, &txn.AccountID, &txn.Date, &amountCents,
		&description, &categoryID, &txn.Pending, &txn.Cleared,
		&txn.TransactionType, &txn.CreatedAt, &txn.Reconciled, &importID,
		&source, &payee, &originalDes, &memo)
	if err != nil {
		return nil, err
	}

	txn.Amount = core.FromCents(amountCents)
	txn.Description = description.String
	txn.CategoryID = int64Ptr(categoryID)
	txn.ImportID = stringPtr(importID)
	txn.Source = stringPtr(source)
	txn.Payee = stringPtr(payee)
	txn.OriginalDescription = stringPtr(originalDes)
	txn.Memo = stringPtr(memo)
	return &txn, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/tally/internal/core"
)

// CategoryStore provides CRUD over categories. On top of the soft-delete
// semantics shared with accounts, system categories are immutable: Update and
// Archive silently skip them.
type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, archived, created_at, display_order,
	parent_category_id, default_discretionary, default_fixed, last_used_date, is_system_category`

// Get returns the active category with the given id, or nil if there is no
// such category or it has been archived.
func (s *CategoryStore) Get(ctx context.Context, id int64) (*core.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ? AND archived = FALSE", id)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// ListActive returns all non-archived categories, system category included,
// ordered by display_order then name.
func (s *CategoryStore) ListActive(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE archived = FALSE ORDER BY display_order, name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Insert creates a new user category and returns its id. There is no way to
// create another system category through this store.
func (s *CategoryStore) Insert(ctx context.Context, req core.CreateCategoryRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, display_order, parent_category_id, default_discretionary, default_fixed)
		 VALUES (?, ?, ?, ?, ?)`,
		req.Name, req.DisplayOrder, req.ParentCategoryID, req.DefaultDiscretionary, req.DefaultFixed)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert category id: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "id", id, "name", req.Name)
	return id, nil
}

// Update overwrites the user-settable fields of an active user category. A
// missing, archived, or system target is a successful no-op.
func (s *CategoryStore) Update(ctx context.Context, id int64, req core.CreateCategoryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories
		 SET name = ?, display_order = ?, parent_category_id = ?,
		     default_discretionary = ?, default_fixed = ?
		 WHERE id = ? AND archived = FALSE AND is_system_category = FALSE`,
		req.Name, req.DisplayOrder, req.ParentCategoryID,
		req.DefaultDiscretionary, req.DefaultFixed, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows affected: %w", err)
	}
	if affected == 0 {
		slog.DebugContext(ctx, "No updatable category", "id", id)
	}
	return nil
}

// Archive soft-deletes an active user category. Missing, already archived,
// and system targets are successful no-ops.
func (s *CategoryStore) Archive(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET archived = TRUE WHERE id = ? AND archived = FALSE AND is_system_category = FALSE",
		id)
	if err != nil {
		return fmt.Errorf("archive category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive category rows affected: %w", err)
	}
	if affected == 0 {
		slog.DebugContext(ctx, "No archivable category", "id", id)
	} else {
		slog.InfoContext(ctx, "Category archived", "id", id)
	}
	return nil
}

func scanCategory(row rowScanner) (*core.Category, error) {
	var (
		category      core.Category
		displayOrder  sql.NullInt64
		parentID      sql.NullInt64
		discretionary sql.NullBool
		fixed         sql.NullBool
		lastUsed      sql.NullString
	)
	err := row.Scan(&category.ID, &category.Name, &category.Archived,
		&category.CreatedAt, &displayOrder, &parentID, &discretionary, &fixed,
		&lastUsed, &category.IsSystemCategory)
	if err != nil {
		return nil, err
	}

	category.DisplayOrder = int64Ptr(displayOrder)
	category.ParentCategoryID = int64Ptr(parentID)
	category.DefaultDiscretionary = boolPtr(discretionary)
	category.DefaultFixed = boolPtr(fixed)
	category.LastUsedDate = stringPtr(lastUsed)
	return &category, nil
}

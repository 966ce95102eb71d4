package storage

import (
	"context"
	"testing"

	"github.com/Thaonnor/tally/internal/core"
)

func findSystemCategory(t *testing.T, store *Store) core.Category {
	t.Helper()
	categories, err := store.Categories.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for _, c := range categories {
		if c.IsSystemCategory {
			return c
		}
	}
	t.Fatal("system category not found")
	return core.Category{}
}

func TestCategoryInsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	parentID, err := store.Categories.Insert(ctx, core.CreateCategoryRequest{
		Name:         "Food",
		DisplayOrder: i64Ptr(10),
	})
	if err != nil {
		t.Fatalf("insert parent: %v", err)
	}

	id, err := store.Categories.Insert(ctx, core.CreateCategoryRequest{
		Name:                 "Groceries",
		DisplayOrder:         i64Ptr(11),
		ParentCategoryID:     i64Ptr(parentID),
		DefaultDiscretionary: bPtr(true),
		DefaultFixed:         bPtr(false),
	})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}

	category, err := store.Categories.Get(ctx, id)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if category == nil {
		t.Fatal("expected category, got nil")
	}
	if category.Name != "Groceries" {
		t.Errorf("name = %q", category.Name)
	}
	if category.ParentCategoryID == nil || *category.ParentCategoryID != parentID {
		t.Errorf("parent_category_id = %v, want %d", category.ParentCategoryID, parentID)
	}
	if category.DefaultDiscretionary == nil || !*category.DefaultDiscretionary {
		t.Errorf("default_discretionary = %v", category.DefaultDiscretionary)
	}
	if category.DefaultFixed == nil || *category.DefaultFixed {
		t.Errorf("default_fixed = %v", category.DefaultFixed)
	}
	if category.IsSystemCategory {
		t.Error("inserted categories must be user categories")
	}
	if category.Archived {
		t.Error("new category should not be archived")
	}
}

func TestCategoryGetMissing(t *testing.T) {
	store := newTestStore(t)

	category, err := store.Categories.Get(context.Background(), 99999)
	if err != nil {
		t.Fatalf("get missing category: %v", err)
	}
	if category != nil {
		t.Fatalf("expected nil for missing category, got %+v", category)
	}
}

func TestCategoryListActiveOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	insert := func(name string, order *int64) {
		t.Helper()
		_, err := store.Categories.Insert(ctx, core.CreateCategoryRequest{
			Name:         name,
			DisplayOrder: order,
		})
		if err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	insert("Transport", i64Ptr(2))
	insert("Dining", i64Ptr(1))
	insert("Groceries", i64Ptr(1)) // ties with Dining, broken by name

	categories, err := store.Categories.ListActive(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}

	// The seeded system category has display_order 0 and sorts first.
	want := []string{core.SystemCategoryName, "Dining", "Groceries", "Transport"}
	if len(categories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(categories), len(want))
	}
	for i, name := range want {
		if categories[i].Name != name {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestCategoryUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Categories.Insert(ctx, core.CreateCategoryRequest{Name: "Hobby"})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}

	err = store.Categories.Update(ctx, id, core.CreateCategoryRequest{
		Name:         "Hobbies",
		DisplayOrder: i64Ptr(5),
		DefaultFixed: bPtr(true),
	})
	if err != nil {
		t.Fatalf("update category: %v", err)
	}

	category, err := store.Categories.Get(ctx, id)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if category.Name != "Hobbies" {
		t.Errorf("name = %q, want Hobbies", category.Name)
	}
	if category.DisplayOrder == nil || *category.DisplayOrder != 5 {
		t.Errorf("display_order = %v, want 5", category.DisplayOrder)
	}
}

func TestCategoryUpdateMissingIsNoOp(t *testing.T) {
	store := newTestStore(t)

	err := store.Categories.Update(context.Background(), 99999, core.CreateCategoryRequest{Name: "Ghost"})
	if err != nil {
		t.Fatalf("update of missing category should succeed as a no-op, got %v", err)
	}
}

func TestSystemCategoryImmutable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seeded := findSystemCategory(t, store)

	err := store.Categories.Update(ctx, seeded.ID, core.CreateCategoryRequest{
		Name:         "Renamed",
		DisplayOrder: i64Ptr(42),
	})
	if err != nil {
		t.Fatalf("update of system category should succeed as a no-op, got %v", err)
	}

	after := findSystemCategory(t, store)
	if after.Name != core.SystemCategoryName {
		t.Errorf("system category renamed to %q", after.Name)
	}
	if after.DisplayOrder == nil || *after.DisplayOrder != 0 {
		t.Errorf("system category display_order changed: %v", after.DisplayOrder)
	}
	if !after.IsSystemCategory {
		t.Error("is_system_category flag lost")
	}
}

func TestSystemCategoryUnarchivable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seeded := findSystemCategory(t, store)

	if err := store.Categories.Archive(ctx, seeded.ID); err != nil {
		t.Fatalf("archive of system category should succeed as a no-op, got %v", err)
	}

	// Still present and active.
	after := findSystemCategory(t, store)
	if after.ID != seeded.ID {
		t.Errorf("system category id changed: %d != %d", after.ID, seeded.ID)
	}
}

func TestCategoryArchiveIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Categories.Insert(ctx, core.CreateCategoryRequest{Name: "Fleeting"})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}

	if err := store.Categories.Archive(ctx, id); err != nil {
		t.Fatalf("first archive: %v", err)
	}

	category, err := store.Categories.Get(ctx, id)
	if err != nil {
		t.Fatalf("get archived category: %v", err)
	}
	if category != nil {
		t.Fatalf("archived category should be absent from Get, got %+v", category)
	}

	afterFirst, err := store.Categories.ListActive(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}

	if err := store.Categories.Archive(ctx, id); err != nil {
		t.Fatalf("second archive should be a no-op, got %v", err)
	}
	afterSecond, err := store.Categories.ListActive(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(afterSecond) != len(afterFirst) {
		t.Fatalf("listing changed after repeated archive: %d != %d", len(afterSecond), len(afterFirst))
	}
}

package expense

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evcraddock/rent-ledger/internal/db"
)

func TestInsertAndGetByID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	e := newExpense("e1", "", "2024-03-10", CategoryRepair)
	e.PropertyName = GeneralPropertyName
	if err := repo.Insert(ctx, e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetByID(ctx, "e1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PropertyID != "" || got.PropertyName != GeneralPropertyName {
		t.Errorf("property = %q/%q", got.PropertyID, got.PropertyName)
	}
	if got.Description != "Boiler repair" {
		t.Errorf("description = %q", got.Description)
	}
	if !got.Amount.Equal(decimal.RequireFromString("350.75")) {
		t.Errorf("amount = %s, want 350.75", got.Amount)
	}
	if got.Category != CategoryRepair {
		t.Errorf("category = %q, want Repair", got.Category)
	}
}

func TestInsertInvalidCategory(t *testing.T) {
	repo := testRepo(t)

	err := repo.Insert(context.Background(), newExpense("e1", "p1", "2024-03-10", "Bribes"))
	if err == nil {
		t.Fatal("expected error for invalid category")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(string(c)) {
			t.Errorf("%q should be valid", c)
		}
	}
	if ValidCategory("Bribes") || ValidCategory("tax") {
		t.Error("unknown or miscased category accepted")
	}
}

func TestListByDateDescending(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, s := range []struct{ id, date string }{
		{"e1", "2024-02-01"},
		{"e2", "2024-05-01"},
		{"e3", "2023-12-31"},
	} {
		if err := repo.Insert(ctx, newExpense(s.id, "p1", s.date, CategoryUtilities)); err != nil {
			t.Fatalf("insert %s: %v", s.id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"e2", "e1", "e3"}
	if len(list) != len(want) {
		t.Fatalf("got %d expenses, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, id)
		}
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, newExpense("e1", "p1", "2024-03-10", CategoryTax)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Delete(ctx, "e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "e1"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected expense to be gone, got %v", err)
	}
	if err := repo.Delete(ctx, "e1"); err != nil {
		t.Errorf("deleting unknown expense: %v", err)
	}
}

func newExpense(id, propertyID, date string, category Category) *Expense {
	return &Expense{
		ID:           id,
		PropertyID:   propertyID,
		PropertyName: "Moda Flat",
		Description:  "Boiler repair",
		Amount:       decimal.RequireFromString("350.75"),
		Date:         date,
		Category:     category,
		CreatedAt:    time.Now().UTC(),
	}
}

func testRepo(t *testing.T) *Repository {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d.Querier())
}

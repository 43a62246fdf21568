package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
	"github.com/shopspring/decimal"
)

func TestSweetCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	sweet := createTestSweet(t, db, "Marzipan", "Almond", decimal.RequireFromString("9.99"), 12)

	got, err := store.GetSweet(ctx, db, sweet.ID)
	if err != nil {
		t.Fatalf("Get sweet: %v", err)
	}
	if got.Name != "Marzipan" || got.Quantity != 12 || !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("Unexpected sweet %+v", got)
	}

	updated, err := store.UpdateSweet(ctx, db, sweet.ID, store.SweetInput{
		Name:      "Marzipan Deluxe",
		Category:  "Almond",
		Price:     decimal.RequireFromString("11.50"),
		Quantity:  8,
		PosterURL: got.PosterURL,
	})
	if err != nil {
		t.Fatalf("Update sweet: %v", err)
	}
	if updated.Name != "Marzipan Deluxe" || updated.Quantity != 8 {
		t.Errorf("Update not applied: %+v", updated)
	}

	if err := store.DeleteSweet(ctx, db, sweet.ID); err != nil {
		t.Fatalf("Delete sweet: %v", err)
	}

	if _, err := store.GetSweet(ctx, db, sweet.ID); !errors.Is(err, database.ErrSweetNotFound) {
		t.Errorf("Expected sweet not found after delete, got: %v", err)
	}

	if err := store.DeleteSweet(ctx, db, sweet.ID); !errors.Is(err, database.ErrSweetNotFound) {
		t.Errorf("Deleting a missing sweet should report not found, got: %v", err)
	}
}

func TestListSweetsStable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Empty catalog lists as an empty slice, not an error.
	sweets, err := store.ListSweets(ctx, db)
	if err != nil {
		t.Fatalf("List sweets: %v", err)
	}
	if len(sweets) != 0 {
		t.Errorf("Expected empty catalog, got %d", len(sweets))
	}

	createTestSweet(t, db, "Caramel", "Chewy", decimal.NewFromInt(2), 5)
	createTestSweet(t, db, "Praline", "Nutty", decimal.NewFromInt(3), 5)

	first, err := store.ListSweets(ctx, db)
	if err != nil {
		t.Fatalf("List sweets: %v", err)
	}
	second, err := store.ListSweets(ctx, db)
	if err != nil {
		t.Fatalf("List sweets again: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("Repeated reads should be stable, got %d then %d", len(first), len(second))
	}
}

func TestSearchSweets(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	createTestSweet(t, db, "Dark Chocolate Bar", "Chocolate", decimal.NewFromInt(5), 10)
	createTestSweet(t, db, "Milk Fudge", "Chocolate", decimal.NewFromInt(4), 10)
	createTestSweet(t, db, "Lemon Drop", "Hard Candy", decimal.NewFromInt(1), 10)

	// Case-insensitive match on name.
	byName, err := store.SearchSweets(ctx, db, "chocolate bar")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Dark Chocolate Bar" {
		t.Errorf("Expected one name match, got %+v", byName)
	}

	// Substring match on category picks up both chocolates.
	byCategory, err := store.SearchSweets(ctx, db, "CHOCO")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("Expected two category matches, got %d", len(byCategory))
	}

	none, err := store.SearchSweets(ctx, db, "liquorice")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

// Deleting a sweet cascades to its transactions; other ledger rows survive.
func TestDeleteSweetCascadesTransactions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "cascade@example.com", models.RoleUser)
	doomed := createTestSweet(t, db, "Candy Cane", "Mint", decimal.NewFromInt(1), 10)
	kept := createTestSweet(t, db, "Mint Humbug", "Mint", decimal.NewFromInt(1), 10)

	if _, err := store.CreatePurchase(ctx, db, buyer.ID, doomed.ID, 2); err != nil {
		t.Fatalf("Purchase doomed: %v", err)
	}
	if _, err := store.CreatePurchase(ctx, db, buyer.ID, kept.ID, 3); err != nil {
		t.Fatalf("Purchase kept: %v", err)
	}

	if err := store.DeleteSweet(ctx, db, doomed.ID); err != nil {
		t.Fatalf("Delete sweet: %v", err)
	}

	history, err := store.ListUserTransactions(ctx, db, buyer.ID)
	if err != nil {
		t.Fatalf("List transactions: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected only the surviving transaction, got %d", len(history))
	}
	if history[0].SweetID != kept.ID {
		t.Errorf("Wrong transaction survived: %+v", history[0])
	}
}

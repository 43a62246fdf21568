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

func TestCheckoutCreatesOrderWithLines(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "cart@example.com", models.RoleUser)
	cake := createTestSweet(t, db, "Cake", "Pastry", decimal.NewFromInt(100), 50)
	fudge := createTestSweet(t, db, "Fudge", "Chocolate", decimal.NewFromInt(200), 30)

	order, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID: buyer.ID,
		Items: []store.CheckoutItem{
			{SweetID: cake.ID, Quantity: 5},
			{SweetID: fudge.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.ID == "" || order.UserID != buyer.ID || order.Status != models.OrderStatusPlaced {
		t.Errorf("Unexpected order %+v", order)
	}

	expectedTotal := decimal.NewFromInt(100).Mul(decimal.NewFromInt(5)).
		Add(decimal.NewFromInt(200).Mul(decimal.NewFromInt(3)))
	if !order.Total.Equal(expectedTotal) {
		t.Errorf("Expected total %s, got %s", expectedTotal, order.Total)
	}

	if len(order.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(order.Lines))
	}
	for _, line := range order.Lines {
		if line.OrderID == nil || *line.OrderID != order.ID {
			t.Errorf("Line not attached to order: %+v", line)
		}
	}

	cakeAfter, err := store.GetSweet(ctx, db, cake.ID)
	if err != nil {
		t.Fatalf("Get sweet: %v", err)
	}
	if cakeAfter.Quantity != 45 {
		t.Errorf("Expected cake stock 45, got %d", cakeAfter.Quantity)
	}

	fudgeAfter, err := store.GetSweet(ctx, db, fudge.ID)
	if err != nil {
		t.Fatalf("Get sweet: %v", err)
	}
	if fudgeAfter.Quantity != 27 {
		t.Errorf("Expected fudge stock 27, got %d", fudgeAfter.Quantity)
	}
}

// A failing line must reject the whole cart: nothing is decremented and no
// order or ledger row survives.
func TestCheckoutAllOrNothing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "partial@example.com", models.RoleUser)
	plenty := createTestSweet(t, db, "Toffee", "Chewy", decimal.NewFromInt(1), 100)
	scarce := createTestSweet(t, db, "Truffle", "Chocolate", decimal.NewFromInt(9), 2)

	_, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID: buyer.ID,
		Items: []store.CheckoutItem{
			{SweetID: plenty.ID, Quantity: 10},
			{SweetID: scarce.ID, Quantity: 5},
		},
	})
	if !errors.Is(err, database.ErrInsufficientStock) {
		t.Fatalf("Expected insufficient stock, got: %v", err)
	}

	plentyAfter, err := store.GetSweet(ctx, db, plenty.ID)
	if err != nil {
		t.Fatalf("Get sweet: %v", err)
	}
	if plentyAfter.Quantity != 100 {
		t.Errorf("First line must not commit when a later line fails, stock %d", plentyAfter.Quantity)
	}

	orders, err := store.ListUserOrders(ctx, db, buyer.ID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("No order should survive a failed checkout, got %d", len(orders))
	}

	ledger, err := store.ListUserTransactions(ctx, db, buyer.ID)
	if err != nil {
		t.Fatalf("List transactions: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("No ledger row should survive a failed checkout, got %d", len(ledger))
	}
}

func TestCheckoutUnknownSweet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "ghost@example.com", models.RoleUser)
	sweet := createTestSweet(t, db, "Nougat", "Chewy", decimal.NewFromInt(2), 10)

	_, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID: buyer.ID,
		Items: []store.CheckoutItem{
			{SweetID: sweet.ID, Quantity: 1},
			{SweetID: "no-such-sweet", Quantity: 1},
		},
	})
	if !errors.Is(err, database.ErrSweetNotFound) {
		t.Fatalf("Expected sweet not found, got: %v", err)
	}

	after, err := store.GetSweet(ctx, db, sweet.ID)
	if err != nil {
		t.Fatalf("Get sweet: %v", err)
	}
	if after.Quantity != 10 {
		t.Errorf("Stock must be unchanged, got %d", after.Quantity)
	}
}

func TestGetOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "single@example.com", models.RoleUser)
	sweet := createTestSweet(t, db, "Praline", "Nutty", decimal.NewFromInt(7), 10)

	placed, err := store.Checkout(ctx, db, store.CheckoutRequest{
		UserID: buyer.ID,
		Items:  []store.CheckoutItem{{SweetID: sweet.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	order, err := store.GetOrder(ctx, db, placed.ID)
	if err != nil {
		t.Fatalf("Get order: %v", err)
	}
	if order.ID != placed.ID || order.UserID != buyer.ID {
		t.Errorf("Unexpected order %+v", order)
	}
	if !order.Total.Equal(decimal.NewFromInt(21)) {
		t.Errorf("Expected total 21, got %s", order.Total)
	}
	if len(order.Lines) != 1 || order.Lines[0].Quantity != 3 {
		t.Errorf("Unexpected lines %+v", order.Lines)
	}

	_, err = store.GetOrder(ctx, db, "no-such-order")
	if !errors.Is(err, database.ErrOrderNotFound) {
		t.Fatalf("Expected order not found, got: %v", err)
	}
}

func TestListUserOrders(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	buyer := createTestUser(t, db, "orders@example.com", models.RoleUser)
	sweet := createTestSweet(t, db, "Brittle", "Nutty", decimal.NewFromInt(4), 50)

	for i := 0; i < 3; i++ {
		_, err := store.Checkout(ctx, db, store.CheckoutRequest{
			UserID: buyer.ID,
			Items:  []store.CheckoutItem{{SweetID: sweet.ID, Quantity: 2}},
		})
		if err != nil {
			t.Fatalf("Checkout %d: %v", i, err)
		}
	}

	orders, err := store.ListUserOrders(ctx, db, buyer.ID)
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}

	if len(orders) != 3 {
		t.Fatalf("Expected 3 orders, got %d", len(orders))
	}
	for _, order := range orders {
		if len(order.Lines) != 1 {
			t.Errorf("Expected 1 line per order, got %d", len(order.Lines))
		}
	}
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.After(orders[i-1].CreatedAt) {
			t.Errorf("Orders not ordered newest-first")
		}
	}
}

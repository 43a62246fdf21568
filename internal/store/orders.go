package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	UserID string
	Items  []CheckoutItem
}

type CheckoutItem struct {
	SweetID  string
	Quantity int
}

// Checkout turns a whole cart into one Order plus one transaction per line,
// atomically. Every line is validated under a row lock before any decrement
// is applied, so a failure on line N leaves lines 1..N-1 uncommitted too.
// Sweets are locked in slice order within a single transaction; callers
// submit each cart at once, and the serializable isolation level retries
// the rare interleavings the locks don't already serialize.
func Checkout(ctx context.Context, db *sql.DB, req CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be a positive integer, got %d", item.Quantity)
		}
	}

	var order *models.Order

	err := database.WithRetry(ctx, db, database.SerializableTxOptions(), func(tx *sql.Tx) error {
		// Validate-all first: lock every sweet and check stock before
		// touching anything.
		prices := make(map[string]decimal.Decimal, len(req.Items))
		total := decimal.Zero
		for _, item := range req.Items {
			sweet, err := lockSweet(ctx, tx, item.SweetID)
			if err != nil {
				return err
			}
			if sweet.Quantity < item.Quantity {
				return &database.InsufficientStockError{
					Available: sweet.Quantity,
					Requested: item.Quantity,
				}
			}
			prices[item.SweetID] = sweet.Price
			total = total.Add(sweet.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		orderID := uuid.NewString()
		order = &models.Order{}
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (id, user_id, status, total, created_at)
			 VALUES ($1, $2, $3, $4, NOW())
			 RETURNING id, user_id, status, total, created_at`,
			orderID, req.UserID, models.OrderStatusPlaced, total).Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// Commit-all: ledger rows and decrements.
		for _, item := range req.Items {
			txn, err := insertTransaction(ctx, tx, req.UserID, item.SweetID, &orderID, item.Quantity)
			if err != nil {
				return err
			}
			order.Lines = append(order.Lines, *txn)
		}

		for _, item := range req.Items {
			if err := decrementStock(ctx, tx, item.SweetID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListUserOrders returns the buyer's orders newest-first with lines
// embedded.
func ListUserOrders(ctx context.Context, db *sql.DB, userID string) ([]models.Order, error) {
	query := `
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range orders {
		lines, err := orderLines(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id string) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	lines, err := orderLines(ctx, db, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

func orderLines(ctx context.Context, db *sql.DB, orderID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, sweet_id, order_id, quantity, created_at
		FROM transactions
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.SweetID,
			&txn.OrderID,
			&txn.Quantity,
			&txn.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return lines, nil
}

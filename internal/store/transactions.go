package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
)

// CreatePurchase commits one purchased line: lock the sweet row, check the
// requested amount against live stock, append the ledger row, decrement.
// All four steps run in one serializable transaction, so a concurrent
// purchase of the same sweet either waits on the row lock or retries on a
// serialization failure; the combined decrements can never exceed the stock
// either of them observed.
//
// The comparison is strictly less-than: buying exactly the remaining stock
// succeeds and leaves the shelf empty.
func CreatePurchase(ctx context.Context, db *sql.DB, userID, sweetID string, quantity int) (*models.Transaction, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer, got %d", quantity)
	}

	var txn *models.Transaction

	err := database.WithRetry(ctx, db, database.SerializableTxOptions(), func(tx *sql.Tx) error {
		sweet, err := lockSweet(ctx, tx, sweetID)
		if err != nil {
			return err
		}

		if sweet.Quantity < quantity {
			return &database.InsufficientStockError{
				Available: sweet.Quantity,
				Requested: quantity,
			}
		}

		txn, err = insertTransaction(ctx, tx, userID, sweetID, nil, quantity)
		if err != nil {
			return err
		}

		return decrementStock(ctx, tx, sweetID, quantity)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, userID, sweetID string, orderID *string, quantity int) (*models.Transaction, error) {
	txn := &models.Transaction{}

	query := `
		INSERT INTO transactions (id, user_id, sweet_id, order_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, user_id, sweet_id, order_id, quantity, created_at`

	err := tx.QueryRowContext(ctx, query, uuid.NewString(), userID, sweetID, orderID, quantity).Scan(
		&txn.ID,
		&txn.UserID,
		&txn.SweetID,
		&txn.OrderID,
		&txn.Quantity,
		&txn.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return txn, nil
}

// ListUserTransactions returns the buyer's history newest-first, each row
// joined with the sweet's current name/category/price/image.
func ListUserTransactions(ctx context.Context, db *sql.DB, userID string) ([]models.TransactionDetail, error) {
	query := `
		SELECT t.id, t.user_id, t.sweet_id, t.order_id, t.quantity, t.created_at,
		       s.id, s.name, s.category, s.price, s.poster_url
		FROM transactions t
		JOIN sweets s ON s.id = t.sweet_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user transactions: %w", err)
	}
	defer rows.Close()

	details := []models.TransactionDetail{}
	for rows.Next() {
		var d models.TransactionDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.SweetID,
			&d.OrderID,
			&d.Quantity,
			&d.Timestamp,
			&d.Sweet.ID,
			&d.Sweet.Name,
			&d.Sweet.Category,
			&d.Sweet.Price,
			&d.Sweet.PosterURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return details, nil
}

// ListAllTransactions is the full ledger for the admin dashboard: every row
// joined with both buyer identity and product snapshot, newest-first.
func ListAllTransactions(ctx context.Context, db *sql.DB) ([]models.TransactionDetail, error) {
	query := `
		SELECT t.id, t.user_id, t.sweet_id, t.order_id, t.quantity, t.created_at,
		       s.id, s.name, s.category, s.price, s.poster_url,
		       u.id, u.full_name, u.email
		FROM transactions t
		JOIN sweets s ON s.id = t.sweet_id
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	defer rows.Close()

	details := []models.TransactionDetail{}
	for rows.Next() {
		var d models.TransactionDetail
		d.User = &models.UserSummary{}
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.SweetID,
			&d.OrderID,
			&d.Quantity,
			&d.Timestamp,
			&d.Sweet.ID,
			&d.Sweet.Name,
			&d.Sweet.Category,
			&d.Sweet.Price,
			&d.Sweet.PosterURL,
			&d.User.ID,
			&d.User.FullName,
			&d.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return details, nil
}

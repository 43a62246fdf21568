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

type SweetInput struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	PosterURL   string
	Description string
}

func CreateSweet(ctx context.Context, db *sql.DB, in SweetInput) (*models.Sweet, error) {
	sweet := &models.Sweet{}

	query := `
		INSERT INTO sweets (id, name, category, price, quantity, poster_url, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, name, category, price, quantity, poster_url, description, created_at`

	err := db.QueryRowContext(ctx, query,
		uuid.NewString(), in.Name, in.Category, in.Price, in.Quantity, in.PosterURL, in.Description).Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.PosterURL,
		&sweet.Description,
		&sweet.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	return sweet, nil
}

func GetSweet(ctx context.Context, db *sql.DB, id string) (*models.Sweet, error) {
	sweet := &models.Sweet{}

	query := `
		SELECT id, name, category, price, quantity, poster_url, description, created_at
		FROM sweets
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.PosterURL,
		&sweet.Description,
		&sweet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSweetNotFound
		}
		return nil, fmt.Errorf("get sweet: %w", err)
	}

	return sweet, nil
}

func ListSweets(ctx context.Context, db *sql.DB) ([]models.Sweet, error) {
	query := `
		SELECT id, name, category, price, quantity, poster_url, description, created_at
		FROM sweets
		ORDER BY created_at DESC`

	return querySweets(ctx, db, query)
}

// SearchSweets matches the query as a case-insensitive substring of either
// name or category.
func SearchSweets(ctx context.Context, db *sql.DB, text string) ([]models.Sweet, error) {
	query := `
		SELECT id, name, category, price, quantity, poster_url, description, created_at
		FROM sweets
		WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`

	return querySweets(ctx, db, query, text)
}

func querySweets(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]models.Sweet, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sweets: %w", err)
	}
	defer rows.Close()

	sweets := []models.Sweet{}
	for rows.Next() {
		var sweet models.Sweet
		err := rows.Scan(
			&sweet.ID,
			&sweet.Name,
			&sweet.Category,
			&sweet.Price,
			&sweet.Quantity,
			&sweet.PosterURL,
			&sweet.Description,
			&sweet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sweet: %w", err)
		}
		sweets = append(sweets, sweet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sweets, nil
}

func UpdateSweet(ctx context.Context, db *sql.DB, id string, in SweetInput) (*models.Sweet, error) {
	sweet := &models.Sweet{}

	query := `
		UPDATE sweets
		SET name = $1, category = $2, price = $3, quantity = $4, poster_url = $5, description = $6
		WHERE id = $7
		RETURNING id, name, category, price, quantity, poster_url, description, created_at`

	err := db.QueryRowContext(ctx, query,
		in.Name, in.Category, in.Price, in.Quantity, in.PosterURL, in.Description, id).Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.PosterURL,
		&sweet.Description,
		&sweet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSweetNotFound
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	return sweet, nil
}

// DeleteSweet removes the sweet; dependent transactions go with it via the
// ON DELETE CASCADE on transactions.sweet_id.
func DeleteSweet(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrSweetNotFound
	}

	return nil
}

// lockSweet reads the sweet under FOR UPDATE so the check-then-decrement
// sequence serializes against concurrent purchases of the same row.
func lockSweet(ctx context.Context, tx *sql.Tx, id string) (*models.Sweet, error) {
	sweet := &models.Sweet{}

	query := `
		SELECT id, name, category, price, quantity, poster_url, description, created_at
		FROM sweets
		WHERE id = $1
		FOR UPDATE`

	err := tx.QueryRowContext(ctx, query, id).Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.PosterURL,
		&sweet.Description,
		&sweet.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSweetNotFound
		}
		return nil, fmt.Errorf("lock sweet: %w", err)
	}

	return sweet, nil
}

// decrementStock applies the conditional update; zero affected rows means
// the stock guard failed. The WHERE clause keeps quantity non-negative
// regardless of what the caller observed before calling.
func decrementStock(ctx context.Context, tx *sql.Tx, sweetID string, quantity int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE sweets
		 SET quantity = quantity - $1
		 WHERE id = $2
		   AND quantity >= $1`,
		quantity, sweetID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return database.ErrInsufficientStock
	}

	return nil
}

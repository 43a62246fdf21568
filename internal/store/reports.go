package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/shopspring/decimal"
)

// SalesSummary feeds the admin dashboard. Revenue is computed from each
// transaction's quantity times the sweet's current price, consistent with
// how the rest of the system snapshots prices at read time.
type SalesSummary struct {
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	TransactionCount  int               `json:"transactionCount"`
	OrderCount        int               `json:"orderCount"`
	CategoryBreakdown []CategoryRevenue `json:"categoryBreakdown"`
	TopSellers        []SweetSales      `json:"topSellers"`
}

type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Units    int             `json:"units"`
}

type SweetSales struct {
	SweetID string          `json:"sweetId"`
	Name    string          `json:"name"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetSalesSummary runs all four aggregates in one read-only repeatable-read
// transaction, so every figure in the summary comes from the same snapshot.
func GetSalesSummary(ctx context.Context, db *sql.DB, topN int) (*SalesSummary, error) {
	summary := &SalesSummary{TotalRevenue: decimal.Zero}

	opts := database.DefaultTxOptions()
	opts.IsolationLevel = sql.LevelRepeatableRead
	opts.ReadOnly = true

	err := database.WithTransaction(ctx, db, opts, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(t.quantity * s.price), 0), COUNT(t.id)
			FROM transactions t
			JOIN sweets s ON s.id = t.sweet_id`).Scan(&summary.TotalRevenue, &summary.TransactionCount)
		if err != nil {
			return fmt.Errorf("sales totals: %w", err)
		}

		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&summary.OrderCount)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT s.category, COALESCE(SUM(t.quantity * s.price), 0), COALESCE(SUM(t.quantity), 0)
			FROM transactions t
			JOIN sweets s ON s.id = t.sweet_id
			GROUP BY s.category
			ORDER BY 2 DESC`)
		if err != nil {
			return fmt.Errorf("category breakdown: %w", err)
		}
		defer rows.Close()

		summary.CategoryBreakdown = []CategoryRevenue{}
		for rows.Next() {
			var c CategoryRevenue
			if err := rows.Scan(&c.Category, &c.Revenue, &c.Units); err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			summary.CategoryBreakdown = append(summary.CategoryBreakdown, c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}

		topRows, err := tx.QueryContext(ctx, `
			SELECT s.id, s.name, COALESCE(SUM(t.quantity), 0), COALESCE(SUM(t.quantity * s.price), 0)
			FROM transactions t
			JOIN sweets s ON s.id = t.sweet_id
			GROUP BY s.id, s.name
			ORDER BY 3 DESC
			LIMIT $1`, topN)
		if err != nil {
			return fmt.Errorf("top sellers: %w", err)
		}
		defer topRows.Close()

		summary.TopSellers = []SweetSales{}
		for topRows.Next() {
			var s SweetSales
			if err := topRows.Scan(&s.SweetID, &s.Name, &s.Units, &s.Revenue); err != nil {
				return fmt.Errorf("scan top seller: %w", err)
			}
			summary.TopSellers = append(summary.TopSellers, s)
		}
		if err := topRows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

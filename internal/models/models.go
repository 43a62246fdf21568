package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Sweet struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	PosterURL   string          `json:"posterURL"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Transaction is one purchased line: immutable once written. OrderID is nil
// for single-line purchases and set for lines created through checkout.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SweetID   string    `json:"sweetId"`
	OrderID   *string   `json:"orderId,omitempty"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Lines     []Transaction   `json:"lines,omitempty"`
}

const (
	OrderStatusPlaced = "placed"
)

// SweetSummary is the product snapshot embedded in transaction listings.
// Price is the product's current price, not the price at purchase time.
type SweetSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	PosterURL string          `json:"posterURL"`
}

type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type TransactionDetail struct {
	Transaction
	Sweet SweetSummary `json:"sweet"`
	User  *UserSummary `json:"user,omitempty"`
}

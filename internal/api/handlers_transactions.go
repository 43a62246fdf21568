package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
)

type purchaseRequest struct {
	SweetID  string       `json:"sweetId"`
	Quantity *json.Number `json:"quantity"`
}

// parseQuantity accepts only well-formed positive integers: zero, negative,
// fractional, and non-numeric values are all rejected.
func parseQuantity(q *json.Number) (int, bool) {
	if q == nil {
		return 0, false
	}
	n, err := q.Int64()
	if err != nil || n <= 0 {
		return 0, false
	}
	return int(n), true
}

func (app *Application) createTransaction(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid transaction data")
		return
	}

	if req.SweetID == "" || req.Quantity == nil {
		app.respondError(w, http.StatusBadRequest, "Invalid transaction data")
		return
	}

	quantity, ok := parseQuantity(req.Quantity)
	if !ok {
		app.respondError(w, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	txn, err := store.CreatePurchase(r.Context(), app.DB, claims.UserID, req.SweetID, quantity)
	if err != nil {
		app.purchaseError(w, err)
		return
	}

	app.respondJSON(w, http.StatusCreated, txn)
}

// purchaseError maps engine failures to wire responses; insufficient stock
// carries the observed counts.
func (app *Application) purchaseError(w http.ResponseWriter, err error) {
	var stockErr *database.InsufficientStockError
	switch {
	case errors.Is(err, database.ErrSweetNotFound):
		app.respondError(w, http.StatusNotFound, "Sweet not found")
	case errors.As(err, &stockErr):
		app.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":     "Not enough quantity available",
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.Is(err, database.ErrInsufficientStock):
		app.respondError(w, http.StatusBadRequest, "Not enough quantity available")
	default:
		app.serverError(w, err)
	}
}

func (app *Application) listMyTransactions(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	details, err := store.ListUserTransactions(r.Context(), app.DB, claims.UserID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, details)
}

func (app *Application) listAllTransactions(w http.ResponseWriter, r *http.Request) {
	details, err := store.ListAllTransactions(r.Context(), app.DB)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, details)
}

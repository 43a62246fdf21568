package api

import (
	"errors"
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
)

type checkoutRequest struct {
	Items []purchaseRequest `json:"items"`
}

// checkout commits a whole cart as one order: every line is validated
// before any stock moves, so a rejected line rejects the cart.
func (app *Application) checkout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Items) == 0 {
		app.respondError(w, http.StatusBadRequest, "Checkout requires at least one item")
		return
	}

	items := make([]store.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.SweetID == "" {
			app.respondError(w, http.StatusBadRequest, "Invalid transaction data")
			return
		}
		quantity, ok := parseQuantity(item.Quantity)
		if !ok {
			app.respondError(w, http.StatusBadRequest, "Quantity must be a positive integer")
			return
		}
		items = append(items, store.CheckoutItem{SweetID: item.SweetID, Quantity: quantity})
	}

	order, err := store.Checkout(r.Context(), app.DB, store.CheckoutRequest{
		UserID: claims.UserID,
		Items:  items,
	})
	if err != nil {
		app.purchaseError(w, err)
		return
	}

	app.respondJSON(w, http.StatusCreated, order)
}

// getOrder responds 404 for orders that belong to someone else, so the
// endpoint does not reveal which order IDs exist. Admins can fetch any order.
func (app *Application) getOrder(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id := r.URL.Query().Get(":id")

	order, err := store.GetOrder(r.Context(), app.DB, id)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			app.respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		app.serverError(w, err)
		return
	}

	if order.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		app.respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	app.respondJSON(w, http.StatusOK, order)
}

func (app *Application) listMyOrders(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	orders, err := store.ListUserOrders(r.Context(), app.DB, claims.UserID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, orders)
}

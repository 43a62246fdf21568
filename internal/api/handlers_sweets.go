package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
	"github.com/shopspring/decimal"
)

type sweetRequest struct {
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Price       *json.Number `json:"price"`
	Quantity    *json.Number `json:"quantity"`
	PosterURL   *string      `json:"posterURL"`
	Description string       `json:"description"`
}

// validateSweetInput applies one validation order for both create and
// update: missing/empty fields first, then value ranges.
func validateSweetInput(req sweetRequest) (store.SweetInput, string) {
	if req.Name == "" || req.Category == "" || req.Price == nil || req.Quantity == nil ||
		req.PosterURL == nil || *req.PosterURL == "" {
		return store.SweetInput{}, "Missing required fields"
	}

	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		return store.SweetInput{}, "Price must be a number"
	}

	quantity, err := req.Quantity.Int64()
	if err != nil {
		return store.SweetInput{}, "Quantity must be an integer"
	}

	if price.IsNegative() || quantity < 0 {
		return store.SweetInput{}, "Price and quantity must be non-negative"
	}

	return store.SweetInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       price,
		Quantity:    int(quantity),
		PosterURL:   *req.PosterURL,
		Description: req.Description,
	}, ""
}

func (app *Application) listSweets(w http.ResponseWriter, r *http.Request) {
	sweets, err := store.ListSweets(r.Context(), app.DB)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, sweets)
}

func (app *Application) searchSweets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		app.respondError(w, http.StatusBadRequest, "Query parameter required")
		return
	}

	sweets, err := store.SearchSweets(r.Context(), app.DB, query)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, sweets)
}

func (app *Application) getSweet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	sweet, err := store.GetSweet(r.Context(), app.DB, id)
	if err != nil {
		if errors.Is(err, database.ErrSweetNotFound) {
			app.respondError(w, http.StatusNotFound, "Sweet not found")
			return
		}
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, sweet)
}

func (app *Application) createSweet(w http.ResponseWriter, r *http.Request) {
	var req sweetRequest
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, msg := validateSweetInput(req)
	if msg != "" {
		app.respondError(w, http.StatusBadRequest, msg)
		return
	}

	sweet, err := store.CreateSweet(r.Context(), app.DB, input)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusCreated, sweet)
}

func (app *Application) updateSweet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	var req sweetRequest
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, msg := validateSweetInput(req)
	if msg != "" {
		app.respondError(w, http.StatusBadRequest, msg)
		return
	}

	sweet, err := store.UpdateSweet(r.Context(), app.DB, id, input)
	if err != nil {
		if errors.Is(err, database.ErrSweetNotFound) {
			app.respondError(w, http.StatusNotFound, "Sweet not found")
			return
		}
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, sweet)
}

func (app *Application) deleteSweet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")

	if err := store.DeleteSweet(r.Context(), app.DB, id); err != nil {
		if errors.Is(err, database.ErrSweetNotFound) {
			app.respondError(w, http.StatusNotFound, "Sweet not found")
			return
		}
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, map[string]string{"message": "Sweet deleted successfully"})
}

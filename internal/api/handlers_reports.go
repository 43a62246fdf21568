package api

import (
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
)

const topSellerLimit = 5

func (app *Application) salesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := store.GetSalesSummary(r.Context(), app.DB, topSellerLimit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.respondJSON(w, http.StatusOK, summary)
}

func (app *Application) healthz(w http.ResponseWriter, r *http.Request) {
	if err := app.DB.PingContext(r.Context()); err != nil {
		app.respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	app.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

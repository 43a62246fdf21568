package api

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *Application) Routes() http.Handler {
	mux := pat.New()

	mux.Post("/api/auth/register", http.HandlerFunc(app.register))
	mux.Post("/api/auth/register-admin", http.HandlerFunc(app.registerAdmin))
	mux.Post("/api/auth/login", http.HandlerFunc(app.login))
	mux.Get("/api/auth/me", app.requireAuth(app.currentUser))

	mux.Get("/api/sweets", http.HandlerFunc(app.listSweets))
	mux.Get("/api/sweets/search", http.HandlerFunc(app.searchSweets))
	mux.Get("/api/sweets/:id", http.HandlerFunc(app.getSweet))
	mux.Post("/api/sweets", app.requireAdmin(app.createSweet))
	mux.Put("/api/sweets/:id", app.requireAdmin(app.updateSweet))
	mux.Del("/api/sweets/:id", app.requireAdmin(app.deleteSweet))

	mux.Post("/api/transactions", app.requireAuth(app.createTransaction))
	mux.Get("/api/transactions/all", app.requireAdmin(app.listAllTransactions))
	mux.Get("/api/transactions", app.requireAuth(app.listMyTransactions))

	mux.Post("/api/checkout", app.requireAuth(app.checkout))
	mux.Get("/api/orders", app.requireAuth(app.listMyOrders))
	mux.Get("/api/orders/:id", app.requireAuth(app.getOrder))

	mux.Get("/api/users", app.requireAdmin(app.listUsers))
	mux.Put("/api/users/:id/promote", app.requireAdmin(app.promoteUser))
	mux.Del("/api/users/:id", app.requireAdmin(app.deleteUser))

	mux.Get("/api/reports/summary", app.requireAdmin(app.salesSummary))

	mux.Get("/healthz", http.HandlerFunc(app.healthz))

	return app.logRequest(app.recoverPanic(mux))
}

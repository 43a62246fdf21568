package api

import (
	"errors"
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
)

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), app.DB)
	if err != nil {
		app.serverError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	}
	app.respondJSON(w, http.StatusOK, out)
}

func (app *Application) promoteUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id := r.URL.Query().Get(":id")

	// Self-action guard: an admin cannot change their own role.
	if id == claims.UserID {
		app.respondError(w, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	user, err := store.GetUser(r.Context(), app.DB, id)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			app.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		app.serverError(w, err)
		return
	}

	if user.Role == models.RoleAdmin {
		app.respondError(w, http.StatusBadRequest, "User is already an admin")
		return
	}

	promoted, err := store.PromoteUser(r.Context(), app.DB, id)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.respondJSON(w, http.StatusOK, userResponse{
		ID: promoted.ID, FullName: promoted.FullName, Email: promoted.Email, Role: promoted.Role,
	})
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id := r.URL.Query().Get(":id")

	if id == claims.UserID {
		app.respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := store.DeleteUser(r.Context(), app.DB, id); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			app.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

package api

import (
	"errors"
	"net/http"

	"github.com/rushikesh125/Incubyte-project-submission/internal/auth"
	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
	"github.com/rushikesh125/Incubyte-project-submission/internal/store"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	app.registerWithRole(w, r, models.RoleUser)
}

// registerAdmin is the operational bootstrap path: same flow, role=admin.
func (app *Application) registerAdmin(w http.ResponseWriter, r *http.Request) {
	app.registerWithRole(w, r, models.RoleAdmin)
}

func (app *Application) registerWithRole(w http.ResponseWriter, r *http.Request, role string) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		app.respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	hash, err := auth.HashPassword(req.Password, app.Cfg.Auth.BcryptCost)
	if err != nil {
		app.serverError(w, err)
		return
	}

	user, err := store.CreateUser(r.Context(), app.DB, req.FullName, req.Email, hash, role)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			app.respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		app.serverError(w, err)
		return
	}

	token, err := app.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.respondJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, FullName: user.FullName, Email: user.Email, Role: user.Role},
	})
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		app.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		app.respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), app.DB, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			app.respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		app.serverError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, database.ErrInvalidCredentials) {
			app.respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		app.serverError(w, err)
		return
	}

	token, err := app.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.respondJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, FullName: user.FullName, Email: user.Email, Role: user.Role},
	})
}

// currentUser re-resolves the account from the store so the response shows
// fresh data even when the token's role claim is stale.
func (app *Application) currentUser(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	user, err := store.GetUser(r.Context(), app.DB, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			app.respondError(w, http.StatusNotFound, "User not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.respondJSON(w, http.StatusOK, map[string]userResponse{
		"user": {ID: user.ID, FullName: user.FullName, Email: user.Email, Role: user.Role},
	})
}

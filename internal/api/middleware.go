package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rushikesh125/Incubyte-project-submission/internal/auth"
	"github.com/rushikesh125/Incubyte-project-submission/internal/models"
)

type contextKey string

const claimsKey contextKey = "claims"

func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

// requireAuth gates a handler on a bearer token: absent token responds 401,
// present-but-invalid or expired responds 403.
func (app *Application) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			app.respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := app.Tokens.Validate(tokenString)
		if err != nil {
			app.respondError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func (app *Application) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if claimsFrom(r).Role != models.RoleAdmin {
			app.respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.InfoLog.Printf("%s %s %s", r.RemoteAddr, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.ErrorLog.Printf("panic: %v", err)
				app.respondError(w, http.StatusInternalServerError, "Server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Package api is the HTTP gateway: it authenticates callers, enforces role
// gates, and translates store results to wire responses.
package api

import (
	"database/sql"
	"log"

	"github.com/rushikesh125/Incubyte-project-submission/internal/auth"
	"github.com/rushikesh125/Incubyte-project-submission/internal/config"
)

type Application struct {
	DB       *sql.DB
	InfoLog  *log.Logger
	ErrorLog *log.Logger
	Tokens   *auth.TokenManager
	Cfg      *config.Config
}

func NewApplication(cfg *config.Config, db *sql.DB, infoLog, errorLog *log.Logger) *Application {
	return &Application{
		DB:       db,
		InfoLog:  infoLog,
		ErrorLog: errorLog,
		Tokens:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Cfg:      cfg,
	}
}

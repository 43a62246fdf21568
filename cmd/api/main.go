package main

import (
	"log"
	"net/http"
	"os"

	"github.com/rushikesh125/Incubyte-project-submission/internal/api"
	"github.com/rushikesh125/Incubyte-project-submission/internal/config"
	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	infoLog.Println("Connected to database")

	app := api.NewApplication(cfg, db, infoLog, errorLog)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Routes(),
		ErrorLog:     errorLog,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	infoLog.Printf("Sweet Shop API starting on port %s", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

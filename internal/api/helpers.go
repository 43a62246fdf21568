package api

import (
	"encoding/json"
	"net/http"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(dst)
}

func (app *Application) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.ErrorLog.Printf("encode JSON response: %v", err)
	}
}

func (app *Application) respondError(w http.ResponseWriter, status int, message string) {
	app.respondJSON(w, status, map[string]string{"error": message})
}

func (app *Application) serverError(w http.ResponseWriter, err error) {
	app.ErrorLog.Println(err)
	app.respondError(w, http.StatusInternalServerError, "Server error")
}

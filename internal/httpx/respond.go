// Package httpx holds the JSON response helpers shared by the HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/beatworks/workshop-dashboard/internal/domain"
)

// WriteJSON writes payload as indented JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

// WriteError maps domain errors onto HTTP statuses. Validation failures are
// 400 with their message, missing rows are 404. Anything else is logged under
// scope and answered with a generic 500.
func WriteError(w http.ResponseWriter, scope string, err error) {
	switch {
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		log.Printf("[%s] internal error: %v", scope, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

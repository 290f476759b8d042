package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"typedrill/internal/access"
	"typedrill/internal/repository"
	"typedrill/internal/security"
	"typedrill/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithError maps a core error onto the HTTP status taxonomy.
// Unexpected errors are logged and hidden behind a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	var validationErr security.ValidationError
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrDuplicateMobile), errors.Is(err, repository.ErrProfileExists):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNoSuchUser):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

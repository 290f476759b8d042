package handlers

import (
	"encoding/json"
	"net/http"

	"typedrill/internal/security"
	"typedrill/internal/service"
)

// ResultHandler exposes the result ledger. Both submit and list are gated
// to the user capability by the route middleware.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new result handler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

type submitResultRequest struct {
	UserName     string  `json:"user_name"`
	UserMobile   string  `json:"user_mobile"`
	PassageTitle string  `json:"passage_title"`
	WPM          float64 `json:"wpm"`
	Accuracy     float64 `json:"accuracy"`
	Mistakes     int     `json:"mistakes"`
}

type resultCreatedResponse struct {
	ID string `json:"id"`
}

// Submit appends a completed test result to the ledger.
func (h *ResultHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	id, err := h.resultService.Submit(r.Context(),
		req.UserName, req.UserMobile, req.PassageTitle,
		req.WPM, req.Accuracy, req.Mistakes)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resultCreatedResponse{ID: id})
}

// List returns all results ordered by submission time ascending.
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.List(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

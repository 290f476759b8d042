package handlers

import (
	"encoding/json"
	"net/http"

	"typedrill/internal/security"
	"typedrill/internal/service"
)

// PassageHandler exposes the passage catalog. Reads are gated to user,
// mutations to admin; the gating is applied by the route middleware.
type PassageHandler struct {
	passageService *service.PassageService
}

// NewPassageHandler creates a new passage handler.
func NewPassageHandler(passageService *service.PassageService) *PassageHandler {
	return &PassageHandler{passageService: passageService}
}

// List returns all passages ordered by ID.
func (h *PassageHandler) List(w http.ResponseWriter, r *http.Request) {
	passages, err := h.passageService.List(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, passages)
}

type passageRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	TimeMinutes int    `json:"time_minutes"`
}

type passageCreatedResponse struct {
	ID string `json:"id"`
}

// Create inserts a passage and returns its derived ID.
func (h *PassageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req passageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	id, err := h.passageService.Add(r.Context(), req.Title, req.Content, req.TimeMinutes)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, passageCreatedResponse{ID: id})
}

// Update replaces the fields of an existing passage.
func (h *PassageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req passageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	id := r.PathValue("id")
	if err := h.passageService.Update(r.Context(), id, req.Title, req.Content, req.TimeMinutes); err != nil {
		respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a passage.
func (h *PassageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.passageService.Delete(r.Context(), id); err != nil {
		respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

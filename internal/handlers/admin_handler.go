package handlers

import (
	"encoding/json"
	"net/http"

	"typedrill/internal/access"
	"typedrill/internal/models"
	"typedrill/internal/security"
	"typedrill/internal/service"
)

// AdminHandler exposes administrative operations. Seeding routes are gated
// to the admin capability by the route middleware; role assignment gates
// itself through the access controller so the first-admin bootstrap works.
type AdminHandler struct {
	bootstrapService *service.BootstrapService
	accessCtl        *access.Controller
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(bootstrapService *service.BootstrapService, accessCtl *access.Controller) *AdminHandler {
	return &AdminHandler{
		bootstrapService: bootstrapService,
		accessCtl:        accessCtl,
	}
}

// SeedData inserts the sample passage catalog. Idempotent.
func (h *AdminHandler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := h.bootstrapService.SeedPassages(r.Context()); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EnsureAdmin registers the well-known admin account under the caller's
// identity. Idempotent.
func (h *AdminHandler) EnsureAdmin(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if err := h.bootstrapService.EnsureAdmin(r.Context(), identity); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignRoleRequest struct {
	Target string `json:"target"`
	Role   string `json:"role"`
}

// AssignRole writes a role assignment with the caller as grantor. The
// access controller enforces that only admins grant roles, modulo the
// first-admin bootstrap.
func (h *AdminHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}
	if req.Target == "" {
		respondWithError(w, r, security.ValidationError{Field: "target", Message: "target identity is required"})
		return
	}
	role := models.Role(req.Role)
	if !role.Valid() {
		respondWithError(w, r, security.ValidationError{Field: "role", Message: "unknown role"})
		return
	}

	grantor := IdentityFromContext(r.Context())
	if err := h.accessCtl.AssignRole(r.Context(), grantor, req.Target, role); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

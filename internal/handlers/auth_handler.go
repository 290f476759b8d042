package handlers

import (
	"encoding/json"
	"net/http"

	"typedrill/internal/models"
	"typedrill/internal/security"
	"typedrill/internal/service"
)

// AuthHandler exposes registration, login and session operations.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type profileResponse struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	LoggedIn bool   `json:"logged_in"`
}

func profileView(p *models.UserProfile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{
		Identity: p.Identity,
		Name:     p.Name,
		Mobile:   p.Mobile,
		LoggedIn: p.LoggedIn(),
	}
}

// Register creates an account for the caller identity.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	identity := IdentityFromContext(r.Context())
	profile, err := h.authService.Register(r.Context(), identity, req.Name, req.Mobile, req.Password)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, profileView(profile))
}

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type loginResponse struct {
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	SessionToken string `json:"session_token"`
}

// Login authenticates by mobile and password and returns the fresh
// session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	profile, err := h.authService.Login(r.Context(), req.Mobile, req.Password)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Name:         profile.Name,
		Mobile:       profile.Mobile,
		SessionToken: profile.SessionToken,
	})
}

type sessionResponse struct {
	Valid bool `json:"valid"`
}

// CheckSession reports whether a mobile/token pair names the current
// session. Used for client polling.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	mobile := r.URL.Query().Get("mobile")
	token := r.URL.Query().Get("token")

	valid, err := h.authService.CheckSession(r.Context(), mobile, token)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Valid: valid})
}

type logoutRequest struct {
	Mobile string `json:"mobile"`
}

// Logout clears the session of the account keyed by mobile. Allowed for
// the account owner and for admins.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	caller := IdentityFromContext(r.Context())
	if err := h.authService.Logout(r.Context(), caller, req.Mobile); err != nil {
		respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type profileEnvelope struct {
	Profile *profileResponse `json:"profile"`
}

// GetCallerProfile returns the caller's own profile, or a null profile
// when the identity has not registered.
func (h *AuthHandler) GetCallerProfile(w http.ResponseWriter, r *http.Request) {
	caller := IdentityFromContext(r.Context())
	profile, err := h.authService.GetProfile(r.Context(), caller, caller)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileEnvelope{Profile: profileView(profile)})
}

// GetUserProfile returns the profile for a target identity. Reading a
// profile other than your own requires admin.
func (h *AuthHandler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("identity")
	caller := IdentityFromContext(r.Context())

	profile, err := h.authService.GetProfile(r.Context(), caller, target)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileEnvelope{Profile: profileView(profile)})
}

type saveProfileRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// SaveProfile updates the caller's own profile fields.
func (h *AuthHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, security.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	caller := IdentityFromContext(r.Context())
	profile, err := h.authService.SaveProfile(r.Context(), caller, req.Name, req.Mobile)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileView(profile))
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"typedrill/internal/access"
	"typedrill/internal/models"
	"typedrill/internal/security"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// IdentityContextKey carries the resolved caller identity.
const IdentityContextKey ContextKey = "identity"

// Middleware holds dependencies for middleware functions.
type Middleware struct {
	access  *access.Controller
	secret  []byte
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance. An empty platformSecret
// switches identity resolution to the trusted X-Caller-Identity header.
func NewMiddleware(accessCtl *access.Controller, platformSecret string, limiter *security.RateLimiter) *Middleware {
	var secret []byte
	if platformSecret != "" {
		secret = []byte(platformSecret)
	}
	return &Middleware{
		access:  accessCtl,
		secret:  secret,
		limiter: limiter,
	}
}

// WithIdentity resolves the caller identity supplied by the surrounding
// platform and stores it in the request context. Every API route runs
// through this, including the public ones.
func (m *Middleware) WithIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.callerIdentity(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// RequireCapability is the single authorization gate: it resolves the
// caller identity and rejects the request before dispatch unless the
// identity holds the required capability.
func (m *Middleware) RequireCapability(capability models.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.WithIdentity(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if err := m.access.Require(r.Context(), identity, capability); err != nil {
			respondWithError(w, r, err)
			return
		}
		next(w, r)
	})
}

// RateLimit throttles a handler per client.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientKey(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		next(w, r)
	}
}

// callerIdentity extracts the opaque caller token from the request.
func (m *Middleware) callerIdentity(r *http.Request) (string, error) {
	if m.secret == nil {
		identity := r.Header.Get("X-Caller-Identity")
		if identity == "" {
			return "", errors.New("missing caller identity")
		}
		return identity, nil
	}

	authz := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok || tokenString == "" {
		return "", errors.New("missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid platform token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("platform token missing subject")
	}
	return subject, nil
}

// IdentityFromContext retrieves the caller identity from the request context.
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(IdentityContextKey).(string)
	return identity
}

// Logging middleware logs HTTP requests.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

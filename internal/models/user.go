package models

import "time"

// Role is the capability level held by a caller identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Satisfies reports whether a holder of the role has the given capability.
// Admin implies user; guest is the default and grants nothing protected.
func (r Role) Satisfies(capability Role) bool {
	switch capability {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleUser:
		return r == RoleAdmin || r == RoleUser
	case RoleGuest:
		return true
	}
	return false
}

// UserProfile represents an account in the system. Identity is the opaque
// caller token supplied by the surrounding platform; Mobile is the
// human-facing account key used for login and is unique across profiles.
type UserProfile struct {
	Identity     string    `json:"identity"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile"`
	Credential   string    `json:"-"`
	SessionToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoggedIn reports whether the profile currently holds an active session.
// The profile has a single session slot: a fresh login overwrites it and
// logout clears it.
func (p *UserProfile) LoggedIn() bool {
	return p.SessionToken != ""
}

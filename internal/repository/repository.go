package repository

import (
	"context"
	"errors"

	"typedrill/internal/models"
)

var (
	// ErrDuplicateMobile signals a registration collision on the mobile number.
	ErrDuplicateMobile = errors.New("mobile number already registered")
	// ErrProfileExists signals that the caller identity already owns a profile.
	ErrProfileExists = errors.New("profile already exists for identity")
	// ErrNotFound signals a reference to a nonexistent profile, passage or result.
	ErrNotFound = errors.New("not found")
)

// UserStore persists user profiles keyed by caller identity, with a
// secondary unique index on mobile number. Lookups that find nothing
// return (nil, nil); mutations that miss return ErrNotFound.
type UserStore interface {
	// CreateProfile inserts a profile, updating the mobile index in the
	// same atomic step. Fails with ErrDuplicateMobile or ErrProfileExists.
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, identity string) (*models.UserProfile, error)
	GetProfileByMobile(ctx context.Context, mobile string) (*models.UserProfile, error)
	// UpdateProfile overwrites the stored profile. A mobile change moves
	// the index entry atomically and fails with ErrDuplicateMobile when
	// the new number is taken by another identity.
	UpdateProfile(ctx context.Context, profile *models.UserProfile) error
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// RoleStore holds the identity to role relation. Unassigned identities are
// implicitly guests; assignments are overwritten, never removed.
type RoleStore interface {
	GetRole(ctx context.Context, identity string) (models.Role, error)
	SetRole(ctx context.Context, identity string, role models.Role) error
	AdminExists(ctx context.Context) (bool, error)
	ListRoles(ctx context.Context) (map[string]models.Role, error)
}

// PassageStore is the CRUD store for practice passages, keyed by the
// derived passage ID. ListPassages returns passages ordered by ID.
type PassageStore interface {
	CreatePassage(ctx context.Context, passage *models.Passage) error
	GetPassage(ctx context.Context, id string) (*models.Passage, error)
	UpdatePassage(ctx context.Context, passage *models.Passage) error
	DeletePassage(ctx context.Context, id string) error
	ListPassages(ctx context.Context) ([]models.Passage, error)
	CountPassages(ctx context.Context) (int, error)
}

// ResultStore is the append-only ledger of submitted test results.
// ListResults returns results ordered by submission time ascending.
type ResultStore interface {
	AppendResult(ctx context.Context, result *models.TestResult) error
	ListResults(ctx context.Context) ([]models.TestResult, error)
}

// Resetter is implemented by stores that can drop all of their state.
// Used by the backup tool's destructive import.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Stores bundles the four stores so they can be passed around together.
type Stores struct {
	Users    UserStore
	Roles    RoleStore
	Passages PassageStore
	Results  ResultStore
}

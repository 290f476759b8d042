package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"typedrill/internal/access"
	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/security"
)

var (
	// ErrNoSuchUser signals a login or logout against an unknown mobile number.
	ErrNoSuchUser = errors.New("no account for mobile number")
	// ErrInvalidCredentials signals a password mismatch on login.
	ErrInvalidCredentials = errors.New("invalid mobile or password")
)

// AuthService handles registration, login and session lifecycle. Sessions
// live embedded in the profile: a single slot per account, overwritten by
// each login and cleared by logout.
type AuthService struct {
	users  repository.UserStore
	access *access.Controller
	email  *EmailService
}

// NewAuthService creates a new auth service. email may be a disabled
// service; it is only used for best-effort notifications.
func NewAuthService(users repository.UserStore, accessCtl *access.Controller, email *EmailService) *AuthService {
	return &AuthService{
		users:  users,
		access: accessCtl,
		email:  email,
	}
}

// Register creates a profile for the caller identity and grants it the
// user capability. The very first account also receives admin, which is
// the bootstrap path for the initial administrator.
func (s *AuthService) Register(ctx context.Context, identity, name, mobile, password string) (*models.UserProfile, error) {
	if err := security.ValidateName(name); err != nil {
		return nil, err
	}
	if err := security.ValidateMobile(mobile); err != nil {
		return nil, err
	}
	if err := security.ValidatePassword(password); err != nil {
		return nil, err
	}

	credential, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	profile := &models.UserProfile{
		Identity:   identity,
		Name:       name,
		Mobile:     mobile,
		Credential: credential,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.users.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	role := models.RoleUser
	adminExists, err := s.access.HasAnyAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for admins: %w", err)
	}
	if !adminExists {
		role = models.RoleAdmin
	}
	if err := s.access.Grant(ctx, identity, role); err != nil {
		return nil, fmt.Errorf("failed to grant role: %w", err)
	}

	if s.email != nil && s.email.IsEnabled() {
		if err := s.email.SendRegistrationNotice(ctx, name, mobile); err != nil {
			log.Printf("Warning: failed to send registration notice: %v", err)
		}
	}

	return profile, nil
}

// Login verifies the password for the account keyed by mobile and mints a
// fresh session token, invalidating any previously issued token for the
// same account.
func (s *AuthService) Login(ctx context.Context, mobile, password string) (*models.UserProfile, error) {
	profile, err := s.users.GetProfileByMobile(ctx, mobile)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoSuchUser
	}

	if !security.CheckPassword(password, profile.Credential) {
		return nil, ErrInvalidCredentials
	}

	profile.SessionToken = security.GenerateSessionToken()
	profile.UpdatedAt = time.Now()
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return profile, nil
}

// CheckSession reports whether the given token is the account's current
// session token. It is pure: no state is read-modified, so it is safe for
// polling.
func (s *AuthService) CheckSession(ctx context.Context, mobile, token string) (bool, error) {
	profile, err := s.users.GetProfileByMobile(ctx, mobile)
	if err != nil {
		return false, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return false, nil
	}
	return token != "" && profile.SessionToken == token, nil
}

// Logout clears the session slot of the account keyed by mobile. The
// caller must be the account owner or an admin.
func (s *AuthService) Logout(ctx context.Context, caller, mobile string) error {
	profile, err := s.users.GetProfileByMobile(ctx, mobile)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return ErrNoSuchUser
	}

	if profile.Identity != caller {
		isAdmin, err := s.access.IsAdmin(ctx, caller)
		if err != nil {
			return err
		}
		if !isAdmin {
			return access.ErrUnauthorized
		}
	}

	profile.SessionToken = ""
	profile.UpdatedAt = time.Now()
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// GetProfile returns the profile for the target identity, or nil when none
// exists. Callers may read their own profile; reading another identity's
// profile requires admin.
func (s *AuthService) GetProfile(ctx context.Context, caller, target string) (*models.UserProfile, error) {
	if caller != target {
		isAdmin, err := s.access.IsAdmin(ctx, caller)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, access.ErrUnauthorized
		}
	}
	return s.users.GetProfile(ctx, target)
}

// SaveProfile updates the caller's own name and mobile. The credential and
// session slot are preserved; a mobile change fails with ErrDuplicateMobile
// when the new number belongs to another account.
func (s *AuthService) SaveProfile(ctx context.Context, caller, name, mobile string) (*models.UserProfile, error) {
	if err := security.ValidateName(name); err != nil {
		return nil, err
	}
	if err := security.ValidateMobile(mobile); err != nil {
		return nil, err
	}

	profile, err := s.users.GetProfile(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoSuchUser
	}

	profile.Name = name
	profile.Mobile = mobile
	profile.UpdatedAt = time.Now()
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Package access answers capability questions for caller identities.
// Every protected operation is gated through a Controller before any store
// is touched.
package access

import (
	"context"
	"errors"
	"fmt"

	"typedrill/internal/models"
	"typedrill/internal/repository"
)

// ErrUnauthorized signals that the caller lacks the required capability.
var ErrUnauthorized = errors.New("unauthorized")

// Controller evaluates role assignments against required capabilities.
type Controller struct {
	roles repository.RoleStore
}

// NewController creates a controller over the given role store.
func NewController(roles repository.RoleStore) *Controller {
	return &Controller{roles: roles}
}

// HasPermission reports whether the identity holds the given capability.
// Unassigned identities are guests and hold no protected capability.
func (c *Controller) HasPermission(ctx context.Context, identity string, capability models.Role) (bool, error) {
	role, err := c.roles.GetRole(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("failed to get role: %w", err)
	}
	return role.Satisfies(capability), nil
}

// IsAdmin reports whether the identity holds an explicit admin assignment.
func (c *Controller) IsAdmin(ctx context.Context, identity string) (bool, error) {
	return c.HasPermission(ctx, identity, models.RoleAdmin)
}

// Require returns ErrUnauthorized unless the identity holds the capability.
func (c *Controller) Require(ctx context.Context, identity string, capability models.Role) error {
	ok, err := c.HasPermission(ctx, identity, capability)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// HasAnyAdmin reports whether any identity holds an admin assignment.
func (c *Controller) HasAnyAdmin(ctx context.Context) (bool, error) {
	exists, err := c.roles.AdminExists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check for admins: %w", err)
	}
	return exists, nil
}

// AssignRole writes or overwrites the assignment for target. The grantor
// must be an admin, except for the first-admin bootstrap: while no admin
// exists, an identity may assign admin to itself.
func (c *Controller) AssignRole(ctx context.Context, grantor, target string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}

	isAdmin, err := c.IsAdmin(ctx, grantor)
	if err != nil {
		return err
	}
	if !isAdmin {
		exists, err := c.roles.AdminExists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for admins: %w", err)
		}
		if exists || grantor != target || role != models.RoleAdmin {
			return ErrUnauthorized
		}
	}

	return c.roles.SetRole(ctx, target, role)
}

// Grant writes an assignment without a grantor check. It is used by the
// operation layer on paths it has already gated, such as registration
// granting the user capability.
func (c *Controller) Grant(ctx context.Context, target string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return c.roles.SetRole(ctx, target, role)
}

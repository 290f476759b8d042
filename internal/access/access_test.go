package access

import (
	"context"
	"errors"
	"testing"

	"typedrill/internal/models"
	"typedrill/internal/repository"
)

func newController(t *testing.T) (*Controller, repository.RoleStore) {
	t.Helper()
	roles := repository.NewMemoryRoleStore()
	return NewController(roles), roles
}

func TestHasPermission(t *testing.T) {
	ctx := context.Background()
	ctl, roles := newController(t)

	if err := roles.SetRole(ctx, "admin-id", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	if err := roles.SetRole(ctx, "user-id", models.RoleUser); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	tests := []struct {
		name       string
		identity   string
		capability models.Role
		want       bool
	}{
		{
			name:       "admin has admin capability",
			identity:   "admin-id",
			capability: models.RoleAdmin,
			want:       true,
		},
		{
			name:       "admin has user capability",
			identity:   "admin-id",
			capability: models.RoleUser,
			want:       true,
		},
		{
			name:       "user has user capability",
			identity:   "user-id",
			capability: models.RoleUser,
			want:       true,
		},
		{
			name:       "user lacks admin capability",
			identity:   "user-id",
			capability: models.RoleAdmin,
			want:       false,
		},
		{
			name:       "unknown identity lacks user capability",
			identity:   "stranger",
			capability: models.RoleUser,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctl.HasPermission(ctx, tt.identity, tt.capability)
			if err != nil {
				t.Fatalf("HasPermission() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	ctl, roles := newController(t)

	if err := roles.SetRole(ctx, "user-id", models.RoleUser); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	if err := ctl.Require(ctx, "user-id", models.RoleUser); err != nil {
		t.Errorf("Require(user capability) error = %v, want nil", err)
	}
	if err := ctl.Require(ctx, "user-id", models.RoleAdmin); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Require(admin capability) error = %v, want ErrUnauthorized", err)
	}
	if err := ctl.Require(ctx, "stranger", models.RoleUser); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Require(unknown identity) error = %v, want ErrUnauthorized", err)
	}
}

func TestAssignRoleBootstrap(t *testing.T) {
	ctx := context.Background()
	ctl, _ := newController(t)

	// While no admin exists an identity may claim admin for itself
	if err := ctl.AssignRole(ctx, "first", "first", models.RoleAdmin); err != nil {
		t.Fatalf("bootstrap self-assign error = %v, want nil", err)
	}

	isAdmin, err := ctl.IsAdmin(ctx, "first")
	if err != nil {
		t.Fatalf("IsAdmin() error = %v", err)
	}
	if !isAdmin {
		t.Error("IsAdmin(first) = false after bootstrap, want true")
	}

	// After bootstrap the same path is closed
	if err := ctl.AssignRole(ctx, "second", "second", models.RoleAdmin); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("post-bootstrap self-assign error = %v, want ErrUnauthorized", err)
	}
}

func TestAssignRole(t *testing.T) {
	ctx := context.Background()
	ctl, roles := newController(t)

	if err := roles.SetRole(ctx, "admin-id", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	tests := []struct {
		name    string
		grantor string
		target  string
		role    models.Role
		wantErr error
	}{
		{
			name:    "admin grants user",
			grantor: "admin-id",
			target:  "alice",
			role:    models.RoleUser,
			wantErr: nil,
		},
		{
			name:    "admin grants admin",
			grantor: "admin-id",
			target:  "bob",
			role:    models.RoleAdmin,
			wantErr: nil,
		},
		{
			name:    "non-admin cannot grant",
			grantor: "alice",
			target:  "carol",
			role:    models.RoleUser,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "non-admin cannot self-grant once an admin exists",
			grantor: "alice",
			target:  "alice",
			role:    models.RoleAdmin,
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctl.AssignRole(ctx, tt.grantor, tt.target, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AssignRole() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignRoleInvalidRole(t *testing.T) {
	ctx := context.Background()
	ctl, roles := newController(t)

	if err := roles.SetRole(ctx, "admin-id", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	if err := ctl.AssignRole(ctx, "admin-id", "alice", models.Role("owner")); err == nil {
		t.Error("AssignRole(invalid role) error = nil, want error")
	}
}

func TestHasAnyAdmin(t *testing.T) {
	ctx := context.Background()
	ctl, roles := newController(t)

	exists, err := ctl.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin() error = %v", err)
	}
	if exists {
		t.Error("HasAnyAdmin() = true on empty store, want false")
	}

	if err := roles.SetRole(ctx, "someone", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	exists, err = ctl.HasAnyAdmin(ctx)
	if err != nil {
		t.Fatalf("HasAnyAdmin() error = %v", err)
	}
	if !exists {
		t.Error("HasAnyAdmin() = false after admin assignment, want true")
	}
}

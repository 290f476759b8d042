package models

import (
	"strings"
	"testing"
	"time"
)

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Role
		expected   bool
	}{
		{"admin has admin", RoleAdmin, RoleAdmin, true},
		{"admin has user", RoleAdmin, RoleUser, true},
		{"user lacks admin", RoleUser, RoleAdmin, false},
		{"user has user", RoleUser, RoleUser, true},
		{"guest lacks user", RoleGuest, RoleUser, false},
		{"guest lacks admin", RoleGuest, RoleAdmin, false},
		{"guest has guest", RoleGuest, RoleGuest, true},
		{"unknown capability", RoleAdmin, Role("owner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.role.Satisfies(tt.capability); result != tt.expected {
				t.Errorf("Satisfies(%s, %s) = %v, want %v", tt.role, tt.capability, result, tt.expected)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleUser, RoleGuest} {
		if !role.Valid() {
			t.Errorf("Valid() = false for %s", role)
		}
	}
	if Role("superuser").Valid() {
		t.Error("Valid() = true for unknown role")
	}
}

func TestNewPassageID(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "The Quick Fox", "the-quick-fox"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"extra whitespace", "  Typing   101  ", "typing-101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewPassageID(tt.title, at)
			if !strings.HasPrefix(id, tt.expected+"-") {
				t.Errorf("NewPassageID(%q) = %q, want prefix %q", tt.title, id, tt.expected)
			}
		})
	}

	// Same title at different instants must not collide.
	a := NewPassageID("repeat", at)
	b := NewPassageID("repeat", at.Add(time.Nanosecond))
	if a == b {
		t.Errorf("expected distinct IDs, both were %q", a)
	}
}

func TestProfileLoggedIn(t *testing.T) {
	p := &UserProfile{Identity: "caller-1", Mobile: "9990001111"}
	if p.LoggedIn() {
		t.Error("fresh profile should not be logged in")
	}
	p.SessionToken = "token"
	if !p.LoggedIn() {
		t.Error("profile with session token should be logged in")
	}
}

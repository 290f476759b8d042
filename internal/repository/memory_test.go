package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"typedrill/internal/models"
)

func TestMemoryUserStoreCreateProfile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	alice := &models.UserProfile{Identity: "alice-id", Name: "Alice", Mobile: "5550100111"}
	if err := store.CreateProfile(ctx, alice); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	tests := []struct {
		name    string
		profile *models.UserProfile
		wantErr error
	}{
		{
			name:    "duplicate identity",
			profile: &models.UserProfile{Identity: "alice-id", Name: "Alice", Mobile: "5550100222"},
			wantErr: ErrProfileExists,
		},
		{
			name:    "duplicate mobile",
			profile: &models.UserProfile{Identity: "bob-id", Name: "Bob", Mobile: "5550100111"},
			wantErr: ErrDuplicateMobile,
		},
		{
			name:    "fresh identity and mobile",
			profile: &models.UserProfile{Identity: "bob-id", Name: "Bob", Mobile: "5550100222"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CreateProfile(ctx, tt.profile)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryUserStoreLookups(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	alice := &models.UserProfile{Identity: "alice-id", Name: "Alice", Mobile: "5550100111"}
	if err := store.CreateProfile(ctx, alice); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	got, err := store.GetProfile(ctx, "alice-id")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got == nil || got.Name != "Alice" {
		t.Errorf("GetProfile() = %+v, want alice", got)
	}

	got, err = store.GetProfile(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetProfile(absent) error = %v", err)
	}
	if got != nil {
		t.Errorf("GetProfile(absent) = %+v, want nil", got)
	}

	got, err = store.GetProfileByMobile(ctx, "5550100111")
	if err != nil {
		t.Fatalf("GetProfileByMobile() error = %v", err)
	}
	if got == nil || got.Identity != "alice-id" {
		t.Errorf("GetProfileByMobile() = %+v, want alice", got)
	}
}

func TestMemoryUserStoreUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	alice := &models.UserProfile{Identity: "alice-id", Name: "Alice", Mobile: "5550100111"}
	bob := &models.UserProfile{Identity: "bob-id", Name: "Bob", Mobile: "5550100222"}
	for _, p := range []*models.UserProfile{alice, bob} {
		if err := store.CreateProfile(ctx, p); err != nil {
			t.Fatalf("CreateProfile(%s) error = %v", p.Identity, err)
		}
	}

	// Mobile move to a taken number is rejected and leaves the index intact
	moved := *alice
	moved.Mobile = "5550100222"
	if err := store.UpdateProfile(ctx, &moved); !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("UpdateProfile(taken mobile) error = %v, want ErrDuplicateMobile", err)
	}
	got, _ := store.GetProfileByMobile(ctx, "5550100111")
	if got == nil || got.Identity != "alice-id" {
		t.Error("old mobile index lost after rejected move")
	}

	// Mobile move to a free number re-indexes
	moved.Mobile = "5550100333"
	if err := store.UpdateProfile(ctx, &moved); err != nil {
		t.Fatalf("UpdateProfile(free mobile) error = %v", err)
	}
	got, _ = store.GetProfileByMobile(ctx, "5550100333")
	if got == nil || got.Identity != "alice-id" {
		t.Error("new mobile not indexed after move")
	}
	got, _ = store.GetProfileByMobile(ctx, "5550100111")
	if got != nil {
		t.Error("old mobile still indexed after move")
	}

	// Unknown identity
	if err := store.UpdateProfile(ctx, &models.UserProfile{Identity: "nobody"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProfile(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRoleStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRoleStore()

	role, err := store.GetRole(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	if role != models.RoleGuest {
		t.Errorf("GetRole(unassigned) = %v, want guest", role)
	}

	if err := store.SetRole(ctx, "alice-id", models.RoleUser); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	role, _ = store.GetRole(ctx, "alice-id")
	if role != models.RoleUser {
		t.Errorf("GetRole() = %v, want user", role)
	}

	exists, _ := store.AdminExists(ctx)
	if exists {
		t.Error("AdminExists() = true without an admin, want false")
	}
	if err := store.SetRole(ctx, "admin-id", models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	exists, _ = store.AdminExists(ctx)
	if !exists {
		t.Error("AdminExists() = false with an admin, want true")
	}
}

func TestMemoryPassageStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPassageStore()

	p := &models.Passage{ID: "morning-run-1", Title: "Morning Run", Content: "text", TimeMinutes: 2}
	if err := store.CreatePassage(ctx, p); err != nil {
		t.Fatalf("CreatePassage() error = %v", err)
	}

	got, err := store.GetPassage(ctx, "morning-run-1")
	if err != nil {
		t.Fatalf("GetPassage() error = %v", err)
	}
	if got == nil || got.Title != "Morning Run" {
		t.Errorf("GetPassage() = %+v, want created passage", got)
	}

	p.Content = "revised text"
	if err := store.UpdatePassage(ctx, p); err != nil {
		t.Fatalf("UpdatePassage() error = %v", err)
	}
	got, _ = store.GetPassage(ctx, "morning-run-1")
	if got.Content != "revised text" {
		t.Errorf("content after update = %q, want %q", got.Content, "revised text")
	}

	if err := store.UpdatePassage(ctx, &models.Passage{ID: "absent"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePassage(absent) error = %v, want ErrNotFound", err)
	}

	if err := store.DeletePassage(ctx, "morning-run-1"); err != nil {
		t.Fatalf("DeletePassage() error = %v", err)
	}
	if err := store.DeletePassage(ctx, "morning-run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeletePassage(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryPassageStoreListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPassageStore()

	for _, id := range []string{"c-passage", "a-passage", "b-passage"} {
		if err := store.CreatePassage(ctx, &models.Passage{ID: id, Title: id}); err != nil {
			t.Fatalf("CreatePassage(%s) error = %v", id, err)
		}
	}

	passages, err := store.ListPassages(ctx)
	if err != nil {
		t.Fatalf("ListPassages() error = %v", err)
	}
	want := []string{"a-passage", "b-passage", "c-passage"}
	if len(passages) != len(want) {
		t.Fatalf("ListPassages() len = %d, want %d", len(passages), len(want))
	}
	for i, id := range want {
		if passages[i].ID != id {
			t.Errorf("ListPassages()[%d].ID = %q, want %q", i, passages[i].ID, id)
		}
	}
}

func TestMemoryResultStoreListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResultStore()

	base := time.Now()
	// Appended out of submission order on purpose
	results := []models.TestResult{
		{ID: "m-3", SubmittedAt: base.Add(2 * time.Second)},
		{ID: "m-1", SubmittedAt: base},
		{ID: "m-2", SubmittedAt: base.Add(time.Second)},
	}
	for i := range results {
		if err := store.AppendResult(ctx, &results[i]); err != nil {
			t.Fatalf("AppendResult() error = %v", err)
		}
	}

	got, err := store.ListResults(ctx)
	if err != nil {
		t.Fatalf("ListResults() error = %v", err)
	}
	want := []string{"m-1", "m-2", "m-3"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("ListResults()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestMemoryStoresReset(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	if err := stores.Users.CreateProfile(ctx, &models.UserProfile{Identity: "a", Mobile: "5550100111"}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if err := stores.Passages.CreatePassage(ctx, &models.Passage{ID: "p"}); err != nil {
		t.Fatalf("CreatePassage() error = %v", err)
	}

	for _, store := range []interface{}{stores.Users, stores.Roles, stores.Passages, stores.Results} {
		r, ok := store.(Resetter)
		if !ok {
			t.Fatalf("store %T does not implement Resetter", store)
		}
		if err := r.Reset(ctx); err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
	}

	profile, _ := stores.Users.GetProfile(ctx, "a")
	if profile != nil {
		t.Error("profile survived Reset")
	}
	count, _ := stores.Passages.CountPassages(ctx)
	if count != 0 {
		t.Errorf("CountPassages() after Reset = %d, want 0", count)
	}
}

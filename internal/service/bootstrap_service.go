package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"typedrill/internal/access"
	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/security"
)

// samplePassages is the fixed seed set inserted into an empty catalog.
var samplePassages = []struct {
	Title   string
	Content string
	Minutes int
}{
	{
		Title: "The Art of Typing",
		Content: "Touch typing is the ability to use muscle memory to find keys fast, " +
			"without using the sense of sight, and with all the available fingers. " +
			"The keyboard should become an extension of the hands, so attention can " +
			"stay on the words rather than the keys.",
		Minutes: 2,
	},
	{
		Title: "A Morning Walk",
		Content: "The quick brown fox jumps over the lazy dog every morning before the " +
			"sun climbs above the hills. Practicing with pangrams exercises every " +
			"letter of the alphabet and keeps the fingers honest on the home row.",
		Minutes: 1,
	},
	{
		Title: "On Perseverance",
		Content: "Speed follows accuracy, never the other way around. A typist who " +
			"slows down to strike the right key builds a foundation that supports " +
			"real speed later, while one who rushes merely practices mistakes.",
		Minutes: 3,
	},
}

// BootstrapService performs idempotent seeding of sample passages and the
// well-known administrator account. Admin gating happens in the request
// layer; startup seeding calls these methods directly.
type BootstrapService struct {
	users         repository.UserStore
	passages      repository.PassageStore
	access        *access.Controller
	adminMobile   string
	adminPassword string
}

// NewBootstrapService creates a new bootstrap service bound to the
// configured admin mobile number and initial password.
func NewBootstrapService(users repository.UserStore, passages repository.PassageStore, accessCtl *access.Controller, adminMobile, adminPassword string) *BootstrapService {
	return &BootstrapService{
		users:         users,
		passages:      passages,
		access:        accessCtl,
		adminMobile:   adminMobile,
		adminPassword: adminPassword,
	}
}

// SeedPassages inserts the sample passages. It is a no-op when the catalog
// already has any passage, so calling it twice leaves the same catalog as
// calling it once.
func (s *BootstrapService) SeedPassages(ctx context.Context) error {
	count, err := s.passages.CountPassages(ctx)
	if err != nil {
		return fmt.Errorf("failed to count passages: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, sample := range samplePassages {
		now := time.Now()
		passage := &models.Passage{
			ID:          models.NewPassageID(sample.Title, now),
			Title:       sample.Title,
			Content:     sample.Content,
			TimeMinutes: sample.Minutes,
			CreatedAt:   now,
		}
		if err := s.passages.CreatePassage(ctx, passage); err != nil {
			return fmt.Errorf("failed to seed passage %q: %w", sample.Title, err)
		}
	}

	log.Printf("Seeded %d sample passages", len(samplePassages))
	return nil
}

// EnsureAdmin registers the well-known admin mobile number under the
// grantor identity and assigns it admin. It is a no-op when that mobile is
// already registered. The operation must stay admin-gated upstream so the
// admin mobile slot cannot be hijacked by an arbitrary identity.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, grantor string) error {
	existing, err := s.users.GetProfileByMobile(ctx, s.adminMobile)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	credential, err := security.HashPassword(s.adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	profile := &models.UserProfile{
		Identity:   grantor,
		Name:       "Administrator",
		Mobile:     s.adminMobile,
		Credential: credential,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.CreateProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if err := s.access.Grant(ctx, grantor, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}

	log.Printf("Admin account registered for mobile %s", s.adminMobile)
	return nil
}

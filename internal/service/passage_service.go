package service

import (
	"context"
	"fmt"
	"time"

	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/security"
)

// PassageService manages the catalog of practice passages. Capability
// gating happens in the request layer before these methods are reached.
type PassageService struct {
	passages repository.PassageStore
}

// NewPassageService creates a new passage service.
func NewPassageService(passages repository.PassageStore) *PassageService {
	return &PassageService{passages: passages}
}

// Add inserts a passage and returns its derived ID. The ID is built from
// the title and the creation instant and never changes afterwards.
func (s *PassageService) Add(ctx context.Context, title, content string, minutes int) (string, error) {
	if err := validatePassage(title, content, minutes); err != nil {
		return "", err
	}

	now := time.Now()
	passage := &models.Passage{
		ID:          models.NewPassageID(title, now),
		Title:       title,
		Content:     content,
		TimeMinutes: minutes,
		CreatedAt:   now,
	}
	if err := s.passages.CreatePassage(ctx, passage); err != nil {
		return "", fmt.Errorf("failed to create passage: %w", err)
	}
	return passage.ID, nil
}

// Update replaces the title, content and duration of an existing passage.
// The ID stays as derived at creation time.
func (s *PassageService) Update(ctx context.Context, id, title, content string, minutes int) error {
	if err := validatePassage(title, content, minutes); err != nil {
		return err
	}

	passage, err := s.passages.GetPassage(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get passage: %w", err)
	}
	if passage == nil {
		return repository.ErrNotFound
	}

	passage.Title = title
	passage.Content = content
	passage.TimeMinutes = minutes
	return s.passages.UpdatePassage(ctx, passage)
}

// Delete removes a passage.
func (s *PassageService) Delete(ctx context.Context, id string) error {
	return s.passages.DeletePassage(ctx, id)
}

// List returns all passages ordered by ID. The listing is recomputed on
// every call, so repeated calls observe store mutations.
func (s *PassageService) List(ctx context.Context) ([]models.Passage, error) {
	return s.passages.ListPassages(ctx)
}

func validatePassage(title, content string, minutes int) error {
	if title == "" {
		return security.ValidationError{Field: "title", Message: "title is required"}
	}
	if content == "" {
		return security.ValidationError{Field: "content", Message: "content is required"}
	}
	if minutes <= 0 {
		return security.ValidationError{Field: "time_minutes", Message: "allotted minutes must be positive"}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"typedrill/internal/models"
	"typedrill/internal/repository"
	"typedrill/internal/security"
)

// ResultService records and lists submitted typing-test results. The
// ledger is append-only: results are never updated or deleted.
type ResultService struct {
	results repository.ResultStore
}

// NewResultService creates a new result service.
func NewResultService(results repository.ResultStore) *ResultService {
	return &ResultService{results: results}
}

// Submit timestamps the result at the submission instant, derives its ID
// from the mobile number and that instant, and appends it to the ledger.
func (s *ResultService) Submit(ctx context.Context, userName, userMobile, passageTitle string, wpm, accuracy float64, mistakes int) (string, error) {
	if err := security.ValidateMobile(userMobile); err != nil {
		return "", err
	}
	if wpm < 0 || accuracy < 0 || accuracy > 100 || mistakes < 0 {
		return "", security.ValidationError{Field: "result", Message: "metrics out of range"}
	}

	now := time.Now()
	result := &models.TestResult{
		ID:           models.NewResultID(userMobile, now),
		UserName:     userName,
		UserMobile:   userMobile,
		PassageTitle: passageTitle,
		WPM:          wpm,
		Accuracy:     accuracy,
		Mistakes:     mistakes,
		SubmittedAt:  now,
	}
	if err := s.results.AppendResult(ctx, result); err != nil {
		return "", fmt.Errorf("failed to append result: %w", err)
	}
	return result.ID, nil
}

// List returns all results ordered by submission time ascending.
func (s *ResultService) List(ctx context.Context) ([]models.TestResult, error) {
	return s.results.ListResults(ctx)
}

package models

import (
	"fmt"
	"time"
)

// TestResult is a single completed typing-test submission. Results are
// append-only: they are never updated or deleted after submission.
type TestResult struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	UserMobile   string    `json:"user_mobile"`
	PassageTitle string    `json:"passage_title"`
	WPM          float64   `json:"wpm"`
	Accuracy     float64   `json:"accuracy"`
	Mistakes     int       `json:"mistakes"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// NewResultID derives the result identifier from the submitting account's
// mobile number and the submission instant.
func NewResultID(mobile string, at time.Time) string {
	return fmt.Sprintf("%s-%d", mobile, at.UnixNano())
}

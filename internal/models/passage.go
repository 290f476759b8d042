package models

import (
	"fmt"
	"strings"
	"time"
)

// Passage is a practice text with an allotted typing duration.
type Passage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	TimeMinutes int       `json:"time_minutes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPassageID derives the immutable passage identifier from the title and
// the creation instant. Listing order is lexicographic over these IDs.
func NewPassageID(title string, at time.Time) string {
	return fmt.Sprintf("%s-%d", slugify(title), at.UnixNano())
}

// slugify reduces a title to a lowercase dash-separated key.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

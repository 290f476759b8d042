package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"typedrill/internal/repository"
	"typedrill/internal/security"
)

func TestResultSubmit(t *testing.T) {
	ctx := context.Background()
	svc := NewResultService(repository.NewMemoryResultStore())

	id, err := svc.Submit(ctx, "Alice", "5550100111", "The Morning Run", 48.5, 96.2, 4)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !strings.HasPrefix(id, "5550100111-") {
		t.Errorf("Submit() id = %q, want mobile prefix", id)
	}

	results, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("List() len = %d, want 1", len(results))
	}
	r := results[0]
	if r.UserName != "Alice" || r.WPM != 48.5 || r.Accuracy != 96.2 || r.Mistakes != 4 {
		t.Errorf("List()[0] = %+v, want submitted values", r)
	}
	if r.SubmittedAt.IsZero() {
		t.Error("result has zero submission time")
	}
}

func TestResultSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewResultService(repository.NewMemoryResultStore())

	tests := []struct {
		name     string
		mobile   string
		wpm      float64
		accuracy float64
		mistakes int
	}{
		{name: "bad mobile", mobile: "12ab", wpm: 40, accuracy: 90, mistakes: 0},
		{name: "negative wpm", mobile: "5550100111", wpm: -1, accuracy: 90, mistakes: 0},
		{name: "accuracy above 100", mobile: "5550100111", wpm: 40, accuracy: 101, mistakes: 0},
		{name: "negative accuracy", mobile: "5550100111", wpm: 40, accuracy: -1, mistakes: 0},
		{name: "negative mistakes", mobile: "5550100111", wpm: 40, accuracy: 90, mistakes: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, "Alice", tt.mobile, "Title", tt.wpm, tt.accuracy, tt.mistakes)
			var vErr security.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Submit() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestResultListOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewResultService(repository.NewMemoryResultStore())

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := svc.Submit(ctx, "Alice", "5550100111", "Title", 40, 90, 0)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		ids = append(ids, id)
	}

	results, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("List() len = %d, want 3", len(results))
	}
	for i, id := range ids {
		if results[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q (submission order)", i, results[i].ID, id)
		}
	}
}

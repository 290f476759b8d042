package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"typedrill/internal/repository"
	"typedrill/internal/security"
)

func TestPassageAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewPassageService(repository.NewMemoryPassageStore())

	id, err := svc.Add(ctx, "The Morning Run", "Some practice text.", 2)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !strings.HasPrefix(id, "the-morning-run-") {
		t.Errorf("Add() id = %q, want slug prefix %q", id, "the-morning-run-")
	}

	passages, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("List() len = %d, want 1", len(passages))
	}
	if passages[0].ID != id || passages[0].TimeMinutes != 2 {
		t.Errorf("List()[0] = %+v, want id %q minutes 2", passages[0], id)
	}
}

func TestPassageAddValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewPassageService(repository.NewMemoryPassageStore())

	tests := []struct {
		name    string
		title   string
		content string
		minutes int
	}{
		{name: "empty title", title: "", content: "text", minutes: 1},
		{name: "empty content", title: "Title", content: "", minutes: 1},
		{name: "zero minutes", title: "Title", content: "text", minutes: 0},
		{name: "negative minutes", title: "Title", content: "text", minutes: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.title, tt.content, tt.minutes)
			var vErr security.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Add() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestPassageUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewPassageService(repository.NewMemoryPassageStore())

	id, err := svc.Add(ctx, "Original", "old text", 1)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.Update(ctx, id, "Revised", "new text", 3); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	passages, _ := svc.List(ctx)
	if passages[0].Title != "Revised" || passages[0].Content != "new text" || passages[0].TimeMinutes != 3 {
		t.Errorf("passage after update = %+v, want Revised/new text/3", passages[0])
	}
	// The ID stays as derived at creation
	if passages[0].ID != id {
		t.Errorf("passage ID changed on update: %q != %q", passages[0].ID, id)
	}

	if err := svc.Update(ctx, "absent-id", "T", "c", 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update(absent) error = %v, want ErrNotFound", err)
	}
}

func TestPassageDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewPassageService(repository.NewMemoryPassageStore())

	id, err := svc.Add(ctx, "Disposable", "text", 1)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	passages, _ := svc.List(ctx)
	if len(passages) != 0 {
		t.Errorf("List() after delete len = %d, want 0", len(passages))
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestPassageListObservesMutations(t *testing.T) {
	ctx := context.Background()
	svc := NewPassageService(repository.NewMemoryPassageStore())

	if _, err := svc.Add(ctx, "First", "a", 1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	before, _ := svc.List(ctx)

	if _, err := svc.Add(ctx, "Second", "b", 1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	after, _ := svc.List(ctx)

	if len(before) != 1 || len(after) != 2 {
		t.Errorf("List() lens = %d/%d, want 1/2", len(before), len(after))
	}
}

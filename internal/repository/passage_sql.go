package repository

import (
	"context"
	"database/sql"
	"fmt"

	"typedrill/internal/database"
	"typedrill/internal/models"
)

// SQLPassageStore implements PassageStore over the dialect-aware database layer.
type SQLPassageStore struct {
	db *database.DB
}

// NewSQLPassageStore creates a SQL-backed passage store.
func NewSQLPassageStore(db *database.DB) *SQLPassageStore {
	return &SQLPassageStore{db: db}
}

func (r *SQLPassageStore) CreatePassage(ctx context.Context, passage *models.Passage) error {
	query := `
		INSERT INTO passages (id, title, content, time_minutes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		passage.ID, passage.Title, passage.Content, passage.TimeMinutes, passage.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create passage: %w", err)
	}
	return nil
}

func (r *SQLPassageStore) GetPassage(ctx context.Context, id string) (*models.Passage, error) {
	query := `
		SELECT id, title, content, time_minutes, created_at
		FROM passages
		WHERE id = ?
	`
	passage := &models.Passage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&passage.ID,
		&passage.Title,
		&passage.Content,
		&passage.TimeMinutes,
		&passage.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get passage: %w", err)
	}
	return passage, nil
}

func (r *SQLPassageStore) UpdatePassage(ctx context.Context, passage *models.Passage) error {
	query := `
		UPDATE passages
		SET title = ?, content = ?, time_minutes = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		passage.Title, passage.Content, passage.TimeMinutes, passage.ID)
	if err != nil {
		return fmt.Errorf("failed to update passage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLPassageStore) DeletePassage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM passages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete passage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLPassageStore) ListPassages(ctx context.Context) ([]models.Passage, error) {
	query := `
		SELECT id, title, content, time_minutes, created_at
		FROM passages
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var passages []models.Passage
	for rows.Next() {
		var passage models.Passage
		if err := rows.Scan(
			&passage.ID,
			&passage.Title,
			&passage.Content,
			&passage.TimeMinutes,
			&passage.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		passages = append(passages, passage)
	}

	return passages, rows.Err()
}

func (r *SQLPassageStore) CountPassages(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count passages: %w", err)
	}
	return count, nil
}

// Reset drops all passages.
func (r *SQLPassageStore) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM passages")
	return err
}

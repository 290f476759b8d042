package repository

import (
	"context"
	"fmt"

	"typedrill/internal/database"
	"typedrill/internal/models"
)

// SQLResultStore implements ResultStore over the dialect-aware database
// layer. Rows are insert-only; there is no update or delete path.
type SQLResultStore struct {
	db *database.DB
}

// NewSQLResultStore creates a SQL-backed result ledger.
func NewSQLResultStore(db *database.DB) *SQLResultStore {
	return &SQLResultStore{db: db}
}

func (r *SQLResultStore) AppendResult(ctx context.Context, result *models.TestResult) error {
	query := `
		INSERT INTO results (id, user_name, user_mobile, passage_title, wpm, accuracy, mistakes, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		result.ID, result.UserName, result.UserMobile, result.PassageTitle,
		result.WPM, result.Accuracy, result.Mistakes, result.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to append result: %w", err)
	}
	return nil
}

func (r *SQLResultStore) ListResults(ctx context.Context) ([]models.TestResult, error) {
	query := `
		SELECT id, user_name, user_mobile, passage_title, wpm, accuracy, mistakes, submitted_at
		FROM results
		ORDER BY submitted_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var result models.TestResult
		if err := rows.Scan(
			&result.ID,
			&result.UserName,
			&result.UserMobile,
			&result.PassageTitle,
			&result.WPM,
			&result.Accuracy,
			&result.Mistakes,
			&result.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// Reset drops all recorded results.
func (r *SQLResultStore) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM results")
	return err
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"typedrill/internal/database"
	"typedrill/internal/models"
)

// SQLUserStore implements UserStore over the dialect-aware database layer.
// The mobile column carries a UNIQUE constraint, so the profile row and the
// mobile index are one atomic record.
type SQLUserStore struct {
	db *database.DB
}

// NewSQLUserStore creates a SQL-backed user store.
func NewSQLUserStore(db *database.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

const profileColumns = "identity, name, mobile, credential, session_token, created_at, updated_at"

func (r *SQLUserStore) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles WHERE identity = ?", profile.Identity).Scan(&count); err != nil {
		return fmt.Errorf("failed to check identity: %w", err)
	}
	if count > 0 {
		return ErrProfileExists
	}

	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles WHERE mobile = ?", profile.Mobile).Scan(&count); err != nil {
		return fmt.Errorf("failed to check mobile: %w", err)
	}
	if count > 0 {
		return ErrDuplicateMobile
	}

	query := `
		INSERT INTO profiles (identity, name, mobile, credential, session_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		profile.Identity, profile.Name, profile.Mobile,
		profile.Credential, profile.SessionToken,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return tx.Commit()
}

func (r *SQLUserStore) GetProfile(ctx context.Context, identity string) (*models.UserProfile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE identity = ?"
	return r.scanProfile(r.db.QueryRowContext(ctx, query, identity))
}

func (r *SQLUserStore) GetProfileByMobile(ctx context.Context, mobile string) (*models.UserProfile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE mobile = ?"
	return r.scanProfile(r.db.QueryRowContext(ctx, query, mobile))
}

func (r *SQLUserStore) scanProfile(row *sql.Row) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := row.Scan(
		&profile.Identity,
		&profile.Name,
		&profile.Mobile,
		&profile.Credential,
		&profile.SessionToken,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (r *SQLUserStore) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	query := "SELECT COUNT(*) FROM profiles WHERE mobile = ? AND identity <> ?"
	if err := tx.QueryRowContext(ctx, query, profile.Mobile, profile.Identity).Scan(&count); err != nil {
		return fmt.Errorf("failed to check mobile: %w", err)
	}
	if count > 0 {
		return ErrDuplicateMobile
	}

	query = `
		UPDATE profiles
		SET name = ?, mobile = ?, credential = ?, session_token = ?, updated_at = ?
		WHERE identity = ?
	`
	result, err := tx.ExecContext(ctx, query,
		profile.Name, profile.Mobile, profile.Credential,
		profile.SessionToken, profile.UpdatedAt, profile.Identity)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *SQLUserStore) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	query := "SELECT " + profileColumns + " FROM profiles ORDER BY identity"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		var profile models.UserProfile
		if err := rows.Scan(
			&profile.Identity,
			&profile.Name,
			&profile.Mobile,
			&profile.Credential,
			&profile.SessionToken,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Reset drops all profiles.
func (r *SQLUserStore) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM profiles")
	return err
}

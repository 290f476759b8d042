package repository

import (
	"context"
	"database/sql"
	"fmt"

	"typedrill/internal/database"
	"typedrill/internal/models"
)

// SQLRoleStore implements RoleStore over the dialect-aware database layer.
type SQLRoleStore struct {
	db *database.DB
}

// NewSQLRoleStore creates a SQL-backed role store.
func NewSQLRoleStore(db *database.DB) *SQLRoleStore {
	return &SQLRoleStore{db: db}
}

func (r *SQLRoleStore) GetRole(ctx context.Context, identity string) (models.Role, error) {
	var role string
	query := "SELECT role FROM roles WHERE identity = ?"
	err := r.db.QueryRowContext(ctx, query, identity).Scan(&role)
	if err == sql.ErrNoRows {
		return models.RoleGuest, nil
	}
	if err != nil {
		return models.RoleGuest, fmt.Errorf("failed to get role: %w", err)
	}
	return models.Role(role), nil
}

func (r *SQLRoleStore) SetRole(ctx context.Context, identity string, role models.Role) error {
	// Update-then-insert keeps the upsert portable across all three dialects.
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "UPDATE roles SET role = ? WHERE identity = ?", string(role), identity)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		if _, err := tx.ExecContext(ctx, "INSERT INTO roles (identity, role) VALUES (?, ?)", identity, string(role)); err != nil {
			return fmt.Errorf("failed to insert role: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLRoleStore) AdminExists(ctx context.Context) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM roles WHERE role = ?"
	if err := r.db.QueryRowContext(ctx, query, string(models.RoleAdmin)).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return count > 0, nil
}

func (r *SQLRoleStore) ListRoles(ctx context.Context) (map[string]models.Role, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT identity, role FROM roles")
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[string]models.Role)
	for rows.Next() {
		var identity, role string
		if err := rows.Scan(&identity, &role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles[identity] = models.Role(role)
	}

	return roles, rows.Err()
}

// Reset drops all role assignments.
func (r *SQLRoleStore) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM roles")
	return err
}

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DB wraps the database connection with dialect support. Queries are
// written with ? placeholders and rewritten per dialect before execution.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects to the database selected by dialect name ("sqlite",
// "postgres" or "mysql") and applies dialect-specific connection settings.
func Open(dialectName string, cfg DialectConfig) (*DB, error) {
	dialect, err := NewDialect(dialectName)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

// Dialect returns the active dialect.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Query executes a query with automatic placeholder rewriting.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.dialect.RewriteQuery(query), args...)
}

// QueryRow executes a single-row query with automatic placeholder rewriting.
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.dialect.RewriteQuery(query), args...)
}

// Exec executes a statement with automatic placeholder rewriting.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.dialect.RewriteQuery(query), args...)
}

// QueryContext executes a query with automatic placeholder rewriting.
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.dialect.RewriteQuery(query), args...)
}

// QueryRowContext executes a single-row query with automatic placeholder rewriting.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.dialect.RewriteQuery(query), args...)
}

// ExecContext executes a statement with automatic placeholder rewriting.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.dialect.RewriteQuery(query), args...)
}

package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific behavior.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(cfg DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (? to $1 for postgres).
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId().
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the migrations subdirectory for this dialect.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL for the migrations tracking table.
	CreateMigrationsTableQuery() string
}

// DialectConfig holds the connection parameters of all dialects.
type DialectConfig struct {
	// Path is the database file path (SQLite only).
	Path string

	// URL is the connection URL (PostgreSQL and MySQL).
	URL string
}

// NewDialect returns the dialect for the given name.
func NewDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", name)
	}
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

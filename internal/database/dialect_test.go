package database

import (
	"testing"
)

func TestNewDialect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		driver  string
		wantErr bool
	}{
		{name: "sqlite", input: "sqlite", driver: "sqlite3"},
		{name: "sqlite3 alias", input: "sqlite3", driver: "sqlite3"},
		{name: "empty defaults to sqlite", input: "", driver: "sqlite3"},
		{name: "postgres", input: "postgres", driver: "postgres"},
		{name: "postgresql alias", input: "postgresql", driver: "postgres"},
		{name: "mysql", input: "mysql", driver: "mysql"},
		{name: "unknown", input: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, err := NewDialect(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDialect(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
		})
	}
}

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	if !dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return true for SQLite")
	}
	if got := dialect.MigrationsSubdir(); got != "sqlite" {
		t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
	}
}

func TestDialectPostgres(t *testing.T) {
	dialect := NewPostgresDialect()

	if dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return false for PostgreSQL")
	}
	if got := dialect.MigrationsSubdir(); got != "postgres" {
		t.Errorf("MigrationsSubdir() = %v, want postgres", got)
	}
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	if !dialect.SupportsLastInsertId() {
		t.Error("SupportsLastInsertId() should return true for MySQL")
	}
	if got := dialect.MigrationsSubdir(); got != "mysql" {
		t.Errorf("MigrationsSubdir() = %v, want mysql", got)
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM profiles WHERE identity = ?",
			expected: "SELECT * FROM profiles WHERE identity = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM profiles WHERE identity = ?",
			expected: "SELECT * FROM profiles WHERE identity = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO passages (id, title) VALUES (?, ?)",
			expected: "INSERT INTO passages (id, title) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE profiles SET name = ?, mobile = ? WHERE identity = ?",
			expected: "UPDATE profiles SET name = ?, mobile = ? WHERE identity = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

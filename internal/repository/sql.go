package repository

import "typedrill/internal/database"

// NewSQLStores creates the full set of SQL-backed stores over one connection.
func NewSQLStores(db *database.DB) Stores {
	return Stores{
		Users:    NewSQLUserStore(db),
		Roles:    NewSQLRoleStore(db),
		Passages: NewSQLPassageStore(db),
		Results:  NewSQLResultStore(db),
	}
}

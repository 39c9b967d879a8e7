package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sql.DB, error) {
	// Foreign key enforcement is per-connection state in SQLite, so it goes
	// into the DSN where every pooled connection picks it up, not into a
	// one-off PRAGMA exec that only the first connection would see.
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// An in-memory database exists only on the connection that opened it.
	// One connection also matches the single-session model of the store;
	// file-backed callers may widen the pool with [ConfigureDatabase].
	db.SetMaxOpenConns(1)

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
//
// Callers that opt into more than one connection must not use ":memory:".
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
}

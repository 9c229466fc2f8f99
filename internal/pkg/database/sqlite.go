package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteClient represents a device-local SQLite database client.
// The wallet service uses it as durable storage that survives reboots
// while the device is offline.
type SQLiteClient struct {
	db *sqlx.DB
}

// NewSQLiteClient opens (creating if necessary) the SQLite database at path.
// Pass ":memory:" for an ephemeral store in tests.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	// _busy_timeout makes concurrent writers queue instead of failing,
	// foreign_keys for referential integrity
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows a single writer; serializing through one connection
	// keeps read-modify-write operations atomic with respect to each other.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// GetDB returns the underlying sqlx database handle
func (s *SQLiteClient) GetDB() *sqlx.DB {
	return s.db
}

// Close closes the database
func (s *SQLiteClient) Close() error {
	return s.db.Close()
}

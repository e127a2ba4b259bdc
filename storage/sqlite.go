package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var _ KeyValue = (*SQLiteStore)(nil)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteStore is a KeyValue backed by a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the kv table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// A :memory: database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewInMemorySQLiteStore creates an in-memory SQLite store for testing
func NewInMemorySQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStore(":memory:")
}

func (s *SQLiteStore) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item: %w", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) SetItem(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RemoveItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

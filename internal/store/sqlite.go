// Package store provides ledger persistence backends. The production
// backend is a small SQLite key-value table; an in-memory store exists
// for tests.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// chipsKey is the fixed identifier the chip balance is stored under,
// carried over from the original save data.
const chipsKey = "PlayerChips"

// SQLiteStore persists the chip balance in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps the synchronous per-mutation saves cheap
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS wallet (
		key TEXT PRIMARY KEY,
		chips INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Load returns the persisted balance, reporting whether a record existed.
func (s *SQLiteStore) Load() (int64, bool, error) {
	var chips int64
	err := s.db.QueryRow(`SELECT chips FROM wallet WHERE key = ?`, chipsKey).Scan(&chips)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load balance: %w", err)
	}
	return chips, true, nil
}

// Save writes the balance, inserting the record on first use.
func (s *SQLiteStore) Save(balance int64) error {
	_, err := s.db.Exec(
		`INSERT INTO wallet (key, chips) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET chips = excluded.chips`,
		chipsKey, balance,
	)
	if err != nil {
		return fmt.Errorf("failed to save balance: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

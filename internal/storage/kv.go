// Package storage persists the alarm engine's records through a
// last-write-wins key-value table with JSON values. Each record type
// gets a typed store; reads apply defaults so there is no schema
// migration to speak of.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested key has no stored value.
var ErrNotFound = errors.New("not found")

// KV is a minimal JSON key-value store over SQLite.
type KV struct {
	db *sql.DB
}

// NewKV creates a KV store backed by the given database.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get unmarshals the value stored under key into out. Returns
// ErrNotFound when the key is absent.
func (s *KV) Get(key string, out any) error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return fmt.Errorf("reading key %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding key %q: %w", key, err)
	}
	return nil
}

// Set stores value under key, replacing any previous value.
func (s *KV) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding key %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is
// not an error.
func (s *KV) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

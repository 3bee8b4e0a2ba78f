package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists items to SQLite.
// Use it when patient data must survive a process restart.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite-backed store.
// The path should be a file path (e.g., "./profiles.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (namespace, key)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, namespace []string, key string, value map[string]any) error {
	if len(namespace) == 0 {
		return ErrEmptyNamespace
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (namespace, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, strings.Join(namespace, nsSeparator), key, string(encoded), now, now)

	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, namespace []string, key string) (*Item, error) {
	if len(namespace) == 0 {
		return nil, ErrEmptyNamespace
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var encoded, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT value, created_at, updated_at FROM items
		WHERE namespace = ? AND key = ?
	`, strings.Join(namespace, nsSeparator), key).Scan(&encoded, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	return decodeItem(namespace, key, encoded, createdAt, updatedAt)
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, namespace []string, key string) error {
	if len(namespace) == 0 {
		return ErrEmptyNamespace
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE namespace = ? AND key = ?
	`, strings.Join(namespace, nsSeparator), key)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Search implements Store.
func (s *SQLiteStore) Search(ctx context.Context, namespace []string) ([]*Item, error) {
	if len(namespace) == 0 {
		return nil, ErrEmptyNamespace
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, created_at, updated_at FROM items
		WHERE namespace = ?
		ORDER BY key
	`, strings.Join(namespace, nsSeparator))
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var key, encoded, createdAt, updatedAt string
		if err := rows.Scan(&key, &encoded, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item, err := decodeItem(namespace, key, encoded, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// decodeItem rebuilds an Item from its stored representation.
func decodeItem(namespace []string, key, encoded, createdAt, updatedAt string) (*Item, error) {
	var value map[string]any
	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	item := &Item{
		Namespace: append([]string(nil), namespace...),
		Key:       key,
		Value:     value,
	}
	item.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	item.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return item, nil
}

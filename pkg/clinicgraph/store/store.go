// Package store provides namespaced key-value storage for data that
// outlives a single conversation thread, such as patient profiles.
//
// Values are free-form maps keyed by a hierarchical namespace (e.g.
// ["patient_interactions", patientID]) plus a key. The in-memory
// implementation matches the process lifetime; the SQLite implementation
// survives restarts.
package store

import (
	"context"
	"errors"
	"time"
)

// Store is a namespaced key-value store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a value under (namespace, key), overwriting any
	// existing value. The value map is copied; later mutations by the
	// caller are not reflected in the store.
	Put(ctx context.Context, namespace []string, key string, value map[string]any) error

	// Get retrieves the item stored under (namespace, key).
	// Returns ErrNotFound if no item exists. A missing item is a normal
	// condition: callers typically fall back to a default.
	Get(ctx context.Context, namespace []string, key string) (*Item, error)

	// Delete removes the item under (namespace, key).
	// Returns nil if the item doesn't exist.
	Delete(ctx context.Context, namespace []string, key string) error

	// Search returns all items in the given namespace, ordered by key.
	// Returns an empty slice (not an error) if the namespace is empty.
	Search(ctx context.Context, namespace []string) ([]*Item, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Item is a stored value with its location and timestamps.
type Item struct {
	Namespace []string
	Key       string
	Value     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no item exists under the namespace and key.
	ErrNotFound = errors.New("item not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store closed")

	// ErrEmptyNamespace indicates a namespace with no elements.
	ErrEmptyNamespace = errors.New("namespace cannot be empty")
)

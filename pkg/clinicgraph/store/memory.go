package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// nsSeparator joins namespace elements into a single map key.
// Namespace elements containing the separator are not supported.
const nsSeparator = "\x1f"

// MemoryStore is an in-memory Store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]map[string]*Item // joined namespace -> key -> item
	closed bool
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]map[string]*Item),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, namespace []string, key string, value map[string]any) error {
	if len(namespace) == 0 {
		return ErrEmptyNamespace
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	ns := strings.Join(namespace, nsSeparator)
	if m.items[ns] == nil {
		m.items[ns] = make(map[string]*Item)
	}

	now := time.Now().UTC()
	createdAt := now
	if existing, ok := m.items[ns][key]; ok {
		createdAt = existing.CreatedAt
	}

	m.items[ns][key] = &Item{
		Namespace: append([]string(nil), namespace...),
		Key:       key,
		Value:     copyValue(value),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, namespace []string, key string) (*Item, error) {
	if len(namespace) == 0 {
		return nil, ErrEmptyNamespace
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ns, ok := m.items[strings.Join(namespace, nsSeparator)]
	if !ok {
		return nil, ErrNotFound
	}

	item, ok := ns[key]
	if !ok {
		return nil, ErrNotFound
	}

	return copyItem(item), nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, namespace []string, key string) error {
	if len(namespace) == 0 {
		return ErrEmptyNamespace
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if ns, ok := m.items[strings.Join(namespace, nsSeparator)]; ok {
		delete(ns, key)
	}
	return nil
}

// Search implements Store.
func (m *MemoryStore) Search(_ context.Context, namespace []string) ([]*Item, error) {
	if len(namespace) == 0 {
		return nil, ErrEmptyNamespace
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ns, ok := m.items[strings.Join(namespace, nsSeparator)]
	if !ok {
		return nil, nil
	}

	items := make([]*Item, 0, len(ns))
	for _, item := range ns {
		items = append(items, copyItem(item))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})

	return items, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}

// copyValue shallow-copies a value map so callers and the store
// cannot mutate each other's data.
func copyValue(value map[string]any) map[string]any {
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = v
	}
	return out
}

// copyItem returns a copy of the item with its own value map.
func copyItem(item *Item) *Item {
	return &Item{
		Namespace: append([]string(nil), item.Namespace...),
		Key:       item.Key,
		Value:     copyValue(item.Value),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

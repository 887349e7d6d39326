package store

import (
	"bytes"
	"context"
	"slices"
	"sync"
)

// memoryStore is the in-process [KVStore]. It backs demo mode and tests.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore returns an empty in-memory [KVStore] that also implements
// [Swapper].
func NewMemoryStore() KVStore {
	return &memoryStore{items: make(map[string][]byte)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return bytes.Clone(value), nil
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = bytes.Clone(value)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *memoryStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memoryStore) CompareAndSwap(ctx context.Context, key string, prev, next []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[key]
	switch {
	case prev == nil && exists:
		return false, nil
	case prev != nil && (!exists || !bytes.Equal(current, prev)):
		return false, nil
	}

	m.items[key] = bytes.Clone(next)
	return true, nil
}

func (m *memoryStore) Close() error {
	return nil
}

package storage

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a Store kept in process memory. It backs sessions that must
// not touch disk and the tests of dependent packages.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

// Batch stages writes in a copy and swaps it in only when fn succeeds.
// Other writers wait until the batch is done. fn must use the Store it is
// given, not m.
func (m *MemoryStore) Batch(ctx context.Context, fn func(s Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &MemoryStore{data: maps.Clone(m.data)}
	if err := fn(staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}

package kvstore

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
)

// Memory keeps records in a map. Nothing survives the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// Ensure Memory implements Store
var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]byte),
	}
}

// Get retrieves a copy of a record
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.records[key]
	if !ok {
		return nil, errors.NotFoundf("key %s not found", key)
	}

	return append([]byte(nil), value...), nil
}

// Set stores a copy of value
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return errors.InvalidArgument("key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes a record
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}

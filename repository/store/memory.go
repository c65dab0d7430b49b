// repository/store/memory.go
package store

import (
	"context"
	"sync"
)

// Memory keeps values in process. Default driver for local runs and the
// test double everywhere else.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory { return &Memory{data: make(map[string][]byte)} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := make([]byte, len(value))
	copy(b, value)
	m.data[key] = b
	return nil
}

package storage

import (
	"context"
	"sync"
)

// Memory is the in-memory Store used by unit tests and single-process
// deployments. An optional byte quota reproduces the capacity errors of a
// browser-backed key-value store so the eviction decorator stays testable.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithQuota caps the total stored bytes across all keys. Zero means unlimited.
func WithQuota(bytes int) MemoryOption {
	return func(m *Memory) {
		m.quota = bytes
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{values: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		total := len(value)
		for k, v := range m.values {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.quota {
			return ErrQuotaExceeded
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

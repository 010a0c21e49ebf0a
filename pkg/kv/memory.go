package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is a map-backed substrate for tests and single-run dev sessions.
type Memory struct {
	prefix string

	mu   sync.RWMutex
	data map[string]string
}

// NewMemory builds an empty in-memory substrate namespaced under prefix.
func NewMemory(prefix string) *Memory {
	return &Memory{
		prefix: prefix,
		data:   map[string]string{},
	}
}

// Get returns the value stored under the logical key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[m.prefix+key]
	return value, ok, nil
}

// Set stores the value under the logical key, overwriting any prior value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.prefix+key] = value
	return nil
}

// Delete removes the logical key if present.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, m.prefix+key)
	return nil
}

// ForEach visits every namespaced key in lexical order.
func (m *Memory) ForEach(_ context.Context, fn func(key, value string) error) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		if strings.HasPrefix(key, m.prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = m.data[key]
	}
	m.mu.RUnlock()

	for i, key := range keys {
		if err := fn(key, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

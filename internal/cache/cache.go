// Package cache provides the optional simulation-result cache used by the
// HTTP server. Identical config uploads hash to the same key, so repeat
// simulations can be answered without recomputation.
package cache

import "sync"

// Cache stores rendered simulation responses keyed by config digest.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Memory is the in-process fallback used when no Redis address is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the cached value for key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// Set stores value under key.
func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

package geocache

import (
	"context"
	"sync"
)

// Memory is the default Cache backend: a mutex-guarded map, matching
// engine.py's BatchEngine._GEO_CACHE class-level dict. Last writer wins;
// there is no eviction, so entries from every batch of the run stay
// cached for the life of the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory Cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, host string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	country, ok := m.data[host]
	return country, ok
}

func (m *Memory) Set(_ context.Context, host string, country string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[host] = country
}

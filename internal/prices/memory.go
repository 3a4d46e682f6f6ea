package prices

import (
	"sync"
	"time"
)

// MemoryStorage is a process-local cache used when no Redis URL is
// configured. Single-node deployments lose nothing; the cache only shaves
// upstream calls within its TTL.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	val     []byte
	expires time.Time
}

// NewMemoryStorage creates an empty in-process cache.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value, or nil after expiry.
func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, nil
	}
	return e.val, nil
}

// Set stores a value with an expiry. A zero exp never expires.
func (m *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{val: val}
	if exp > 0 {
		e.expires = time.Now().Add(exp)
	}
	m.entries[key] = e
	return nil
}

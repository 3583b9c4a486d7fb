package session

import (
	"sync"

	"secureai/internal/domain"
)

// KeyCache holds derived shared keys for the lifetime of a process.
//
// Entries are keyed by the ordered (local, remote) pair: the same two users
// seen from different local identities are distinct entries, which keeps
// multi-tenant processes from crossing key material between identities.
type KeyCache struct {
	mu   sync.RWMutex
	keys map[cacheKey]domain.SharedKey
}

type cacheKey struct {
	local  domain.UserID
	remote domain.UserID
}

// NewKeyCache returns an empty cache.
func NewKeyCache() *KeyCache {
	return &KeyCache{keys: make(map[cacheKey]domain.SharedKey)}
}

// Get returns the cached key for the pair, if present.
func (c *KeyCache) Get(local, remote domain.UserID) (domain.SharedKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k, ok := c.keys[cacheKey{local, remote}]
	return k, ok
}

// Add inserts key for the pair if absent and returns the entry that is in
// the cache afterwards. Since derivation is deterministic, either value is
// correct; insert-if-absent just keeps concurrent derivations consistent.
func (c *KeyCache) Add(local, remote domain.UserID, key domain.SharedKey) domain.SharedKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	ck := cacheKey{local, remote}
	if existing, ok := c.keys[ck]; ok {
		return existing
	}
	c.keys[ck] = key
	return key
}

// Len returns the number of cached keys.
func (c *KeyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}

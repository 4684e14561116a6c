// Package cache provides a thread-safe cache with per-entry expiration and
// a size bound, plus content-derived keys.
package cache

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/zeebo/blake3"
)

type entry[V any] struct {
	value   V
	expires time.Time
	added   uint64
}

// TTLCache evicts the oldest entry once it holds maxEntries values.
type TTLCache[K comparable, V any] struct {
	mu         sync.Mutex
	data       map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	seq        uint64
	now        func() time.Time
}

func New[K comparable, V any](ttl time.Duration, maxEntries int) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		data:       make(map[K]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expires) {
		delete(c.data, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictLocked()
	}
	c.seq++
	c.data[key] = entry[V]{value: value, expires: c.now().Add(c.ttl), added: c.seq}
}

// evictLocked drops expired entries, or the oldest one if none expired.
// MUST be called with the lock held.
func (c *TTLCache[K, V]) evictLocked() {
	now := c.now()
	var oldest K
	var oldestSeq uint64
	found, dropped := false, false
	for k, e := range c.data {
		if !now.Before(e.expires) {
			delete(c.data, k)
			dropped = true
			continue
		}
		if !found || e.added < oldestSeq {
			oldest, oldestSeq, found = k, e.added, true
		}
	}
	if !dropped && found {
		delete(c.data, oldest)
	}
}

func (c *TTLCache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[K]entry[V])
}

// Len counts entries, expired or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Key hashes parts into a hex BLAKE3 digest. Parts are length-prefixed so
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := blake3.New()
	var prefix [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range prefix {
			prefix[i] = byte(n >> (8 * i))
		}
		h.Write(prefix[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

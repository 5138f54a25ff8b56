package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry holds one cached value together with its insertion timestamp.
type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
}

// Cache is an in-memory TTL cache safe for concurrent use. Expired entries
// are removed lazily on access; there is no background sweep. When the cache
// is full, the least recently used entry is evicted to make room.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// New creates a cache whose entries stay valid for ttl after insertion.
// maxSize bounds the entry count; a value <= 0 means unbounded.
func New[V any](ttl time.Duration, maxSize int) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		now:     time.Now,
	}
}

// Get looks up key. An entry older than the TTL is deleted and reported as
// a miss. A hit refreshes recency but never the stored timestamp.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if c.now().Sub(ent.storedAt) > c.ttl {
		c.order.Remove(elem)
		delete(c.entries, key)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return ent.value, true
}

// Put inserts or overwrites the entry for key with a fresh timestamp,
// evicting the least recently used entry if the cache is full.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.storedAt = c.now()
		c.order.MoveToFront(elem)
		return
	}

	if c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[V]).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry[V]{
		key:      key,
		value:    value,
		storedAt: c.now(),
	})
}

// Len returns the number of resident entries. Expired entries still count
// until their next access removes them.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

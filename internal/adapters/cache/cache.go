// Package cache provides a bounded in-memory memo for computed dashboard bundles.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// Cache stores values by key with bounded, oldest-first eviction.
type Cache[V any] interface {
	// Get returns the value stored for key, if any.
	Get(ctx context.Context, key string) (V, bool)

	// Put stores v under key. An existing entry is replaced in place.
	Put(ctx context.Context, key string, v V)

	// Delete removes key. Missing keys are ignored.
	Delete(ctx context.Context, key string)

	Size() int64
}

// node represents a single entry in the linked list
type node[V any] struct {
	key   string
	value V
	next  *node[V]
}

// reset clears the node state for reuse
func (n *node[V]) reset() {
	var zero V
	n.key = ""
	n.value = zero
	n.next = nil
}

// inMemoryCache implements Cache using a map and an insertion-ordered linked list.
// For bounded mode (maxSize > 0): the oldest insertion is evicted first and nodes are pooled.
// For unbounded mode (maxSize <= 0): entries are never evicted.
type inMemoryCache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]*node[V]
	head     *node[V] // most recently inserted
	maxSize  int
	size     atomic.Int64
	hits     atomic.Int64
	misses   atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryCache creates a new in-memory cache with configuration options.
func NewInMemoryCache[V any](opts ...Option) Cache[V] {
	cfg := config{maxSize: 256}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &inMemoryCache[V]{
		maxSize: cfg.maxSize,
		entries: make(map[string]*node[V]),
	}
	c.nodePool = sync.Pool{
		New: func() interface{} {
			return &node[V]{}
		},
	}
	return c
}

func (c *inMemoryCache[V]) Get(ctx context.Context, key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return n.value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

func (c *inMemoryCache[V]) Put(ctx context.Context, key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = v
		return
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node[V])
	n.key = key
	n.value = v
	n.next = c.head
	c.head = n
	c.entries[key] = n
	c.size.Add(1)
}

func (c *inMemoryCache[V]) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)

	if c.head == n {
		c.head = n.next
	} else {
		current := c.head
		for current != nil && current.next != n {
			current = current.next
		}
		if current != nil {
			current.next = n.next
		}
	}

	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

// evictOldest removes the tail of the list.
// Must be called with c.mu held.
func (c *inMemoryCache[V]) evictOldest() {
	if c.head == nil {
		return
	}

	var prev *node[V]
	current := c.head
	for current.next != nil {
		prev = current
		current = current.next
	}

	if prev == nil {
		c.head = nil
	} else {
		prev.next = nil
	}
	delete(c.entries, current.key)
	current.reset()
	c.nodePool.Put(current)
	c.size.Add(-1)
}

// Size returns the current number of entries.
func (c *inMemoryCache[V]) Size() int64 {
	return c.size.Load()
}

// Stats reports hit and miss counts when c was built by NewInMemoryCache.
func Stats[V any](c Cache[V]) (hits, misses int64) {
	if m, ok := c.(*inMemoryCache[V]); ok {
		return m.hits.Load(), m.misses.Load()
	}
	return 0, 0
}

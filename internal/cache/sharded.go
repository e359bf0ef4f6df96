package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default number of entries per shard.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Hasher selects the shard of a key.
type Hasher[K any] func(K) uint64

// StringHasher hashes a string signature with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Sharded is a concurrent LRU cache split into ShardCount independently
// locked shards.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	lru     lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// A non-positive capacity selects DefaultCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*entry[K, V])
	}
	return c
}

func (c *Sharded[K, V]) shardOf(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value and marks it as recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.touch(e.node)
	c.hits.Add(1)
	return e.value, true
}

// Put stores value, evicting the least recently used entries of the shard
// when it is full. Values are stored as is; callers must not modify them
// afterwards.
func (c *Sharded[K, V]) Put(key K, value V) {
	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.put(s, key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs with the shard locked, so concurrent callers asking for the
// same key compute it once.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.lru.touch(e.node)
		c.hits.Add(1)
		return e.value
	}
	c.misses.Add(1)
	value := create()
	c.put(s, key, value)
	return value
}

// put inserts or replaces key. Caller holds s.mu.
func (c *Sharded[K, V]) put(s *shard[K, V], key K, value V) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.touch(e.node)
		return
	}
	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.popBack()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.pushFront(key)}
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardOf(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear empties every shard. Statistics are kept.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.reset()
		s.mu.Unlock()
	}
}

// Len returns the number of cached entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns the current counters. Capacity is the total over shards.
func (c *Sharded[K, V]) Stats() Stats {
	st := Stats{
		Len:       c.Len(),
		Capacity:  c.capacity * ShardCount,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	return st
}

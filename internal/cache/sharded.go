package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. It is a power of two so the
	// shard index is a mask of the hash.
	ShardCount = 16

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a key's shard.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of s.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher computes the FNV-1a hash of the little-endian bytes of u.
func Uint64Hasher(u uint64) uint64 {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(u >> (8 * i))
	}
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Stats is a snapshot of cache counters.
type Stats struct {
	// Len is the number of cached values.
	Len int

	// Hits counts lookups served from a cached value.
	Hits uint64

	// Misses counts lookups that found no cached value, including callers
	// that waited on another caller's load.
	Misses uint64

	// Loads counts invocations of a load function.
	Loads uint64

	// Failures counts loads that returned an error.
	Failures uint64

	// Evictions counts values dropped by the capacity limit.
	Evictions uint64
}

// Sharded is a sharded cache with single-flight loading.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	loads     atomic.Uint64
	failures  atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	inflight map[K]*call[V]
	lru      lruRing[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// call is a load in progress. done is closed once val and err are set.
type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// NewSharded creates a cache holding at most capacity values per shard.
// A capacity of zero or less means unbounded.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries:  make(map[K]*entry[K, V]),
			inflight: make(map[K]*call[V]),
		}
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key without loading.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.lru.Touch(e.node)
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// GetOrLoad returns the cached value for key, calling load to produce
// it when absent. Concurrent callers for the same key share one call to
// load. An error from load is returned to every waiting caller and the
// key is left uncached.
func (c *Sharded[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	s := c.shardFor(key)
	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		s.lru.Touch(e.node)
		s.mu.Unlock()
		c.hits.Add(1)
		return e.value, nil
	}
	c.misses.Add(1)
	if cl, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		<-cl.done
		return cl.val, cl.err
	}
	cl := &call[V]{done: make(chan struct{})}
	s.inflight[key] = cl
	s.mu.Unlock()

	c.loads.Add(1)
	func() {
		// Waiters must be released even if load panics.
		defer func() {
			s.mu.Lock()
			delete(s.inflight, key)
			if cl.err == nil {
				c.storeLocked(s, key, cl.val)
			}
			s.mu.Unlock()
			close(cl.done)
		}()
		cl.err = errPanicked
		cl.val, cl.err = load()
	}()
	if cl.err != nil {
		c.failures.Add(1)
	}
	return cl.val, cl.err
}

// Set stores value under key, replacing any cached value.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	c.storeLocked(s, key, value)
	s.mu.Unlock()
}

func (c *Sharded[K, V]) storeLocked(s *shard[K, V], key K, value V) {
	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.Touch(e.node)
		return
	}
	for c.capacity > 0 && s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.PopOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.PushFront(key)}
}

// Delete removes key and reports whether it was cached.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes every cached value. Loads in progress still complete and
// store their results.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.init()
		s.mu.Unlock()
	}
}

// Len returns the number of cached values.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats returns a snapshot of the counters.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Loads:     c.loads.Load(),
		Failures:  c.failures.Load(),
		Evictions: c.evictions.Load(),
	}
}

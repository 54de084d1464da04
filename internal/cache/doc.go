// Package cache provides a sharded, concurrency-safe cache that loads
// missing values at most once per key.
//
// Keys are spread over 16 shards to reduce lock contention. Concurrent
// callers asking for the same missing key wait for a single load and all
// receive its result:
//
//	c := cache.NewSharded[uint64, *Face](0, cache.Uint64Hasher)
//	face, err := c.GetOrLoad(key, func() (*Face, error) {
//	    return parse(key)
//	})
//
// A failed load is handed to every waiter and then forgotten, so a later
// call retries it. Successful values stay until evicted by the optional
// per-shard LRU capacity or removed with Delete or Clear.
//
// # Thread Safety
//
// Sharded is safe for concurrent use and must not be copied after
// creation.
package cache

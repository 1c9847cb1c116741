// Package cachemanager provides typed caches for derived editor state, such as
// the effective style at the caret.
package cachemanager

import "time"

// CacheManager is a typed key/value cache with per-entry expiry.
type CacheManager[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	ItemCount() int
}

package cachemanager

import "time"

// ReadThroughCache computes missing values with fn and stores them.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(input I) (V, error)
	shouldSkipCache bool
}

func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key, computing it from input on a miss.
// Errors are not cached.
func (r *ReadThroughCache[K, V, I]) Get(key K, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(input)
	}

	if value, ok := r.cache.Get(key); ok {
		return value, nil
	}

	value, err := r.fn(input)
	if err != nil {
		return value, err
	}

	r.cache.Set(key, value, ttl)

	return value, nil
}

// Invalidate drops every cached value.
func (r *ReadThroughCache[K, V, I]) Invalidate() {
	r.cache.Flush()
}

package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is a threadsafe, capacity-bounded LRU store. The least recently
// used entry is evicted once the capacity is reached.
type Store[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

// New creates a store holding at most capacity entries. Capacities below 1
// are clamped to 1.
func New[K comparable, V any](capacity int) *Store[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	// lru.New only errors on non-positive sizes, which are clamped above.
	cache, _ := lru.New[K, V](capacity)
	return &Store[K, V]{cache: cache}
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	return s.cache.Get(key)
}

func (s *Store[K, V]) Put(key K, value V) {
	if s == nil {
		return
	}
	s.cache.Add(key, value)
}

func (s *Store[K, V]) Delete(key K) {
	if s == nil {
		return
	}
	s.cache.Remove(key)
}

func (s *Store[K, V]) Len() int {
	if s == nil {
		return 0
	}
	return s.cache.Len()
}

func (s *Store[K, V]) Clear() {
	if s == nil {
		return
	}
	s.cache.Purge()
}

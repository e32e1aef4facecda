package query

import (
	"sync"
)

// Store is the process-wide result cache: an unbounded mapping from cache key
// to the last successfully resolved value. Values are stored untyped and read
// back typed via ValueAs. Entries carry no metadata and never expire; they
// are removed only by explicit invalidation.
type Store struct {
	data sync.Map
}

// NewStore creates an empty result cache. Tests construct their own instance
// for isolation; normal use goes through DefaultStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the cached value for a key.
func (s *Store) Get(key string) (any, bool) {
	return s.data.Load(key)
}

// Has reports whether an entry exists for a key.
func (s *Store) Has(key string) bool {
	_, ok := s.data.Load(key)
	return ok
}

// Set writes a value through to the cache, overwriting any prior entry.
func (s *Store) Set(key string, value any) {
	s.data.Store(key, value)
}

// InvalidateKey removes the entry for a key. Idempotent: removing an absent
// key is a no-op.
func (s *Store) InvalidateKey(key string) {
	s.data.Delete(key)
}

// InvalidateKeys removes the entries for every key in the sequence.
func (s *Store) InvalidateKeys(keys []string) {
	for _, key := range keys {
		s.data.Delete(key)
	}
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.data.Range(func(key, _ any) bool {
		s.data.Delete(key)
		return true
	})
}

// InvalidateAll is an alias for Clear.
func (s *Store) InvalidateAll() {
	s.Clear()
}

// Range iterates over all entries. Iteration order is unspecified.
func (s *Store) Range(fn func(key string, value any) bool) {
	s.data.Range(func(key, value any) bool {
		return fn(key.(string), value)
	})
}

// Size returns the number of cached entries.
func (s *Store) Size() int {
	count := 0
	s.data.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

var (
	defaultStoreOnce sync.Once
	defaultStore     *Store
)

// DefaultStore returns the lazily-created shared cache used by Default().
func DefaultStore() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = NewStore()
	})
	return defaultStore
}

// GetCache exposes the live default cache for inspection and devtools use.
// External mutation through this handle is permitted but can bypass the
// write-through discipline the controllers maintain.
func GetCache() *Store {
	return DefaultStore()
}

// ClearCache removes every entry from the default cache.
func ClearCache() {
	DefaultStore().Clear()
}

// InvalidateKey removes one entry from the default cache.
func InvalidateKey(key string) {
	DefaultStore().InvalidateKey(key)
}

// InvalidateKeys removes a set of entries from the default cache.
func InvalidateKeys(keys []string) {
	DefaultStore().InvalidateKeys(keys)
}

// InvalidateAll removes every entry from the default cache.
func InvalidateAll() {
	DefaultStore().InvalidateAll()
}

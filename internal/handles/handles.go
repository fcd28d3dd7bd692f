// Package handles provides a thread-safe table mapping integer IDs to values.
//
// IDs come from a counter that starts at 1 and only moves forward, so an ID
// is never handed out twice for the lifetime of a Table. Allocation and
// storage are separate steps: a caller may allocate an ID and then store the
// value under a key derived from it (for example its negation).
package handles

import (
	"sync"
)

// Table stores values of type T keyed by int64 IDs.
// The zero value is not usable; create tables with New.
type Table[T any] struct {
	mu      sync.RWMutex
	entries map[int64]T
	nextID  int64
}

// New returns an empty table whose first allocated ID is 1.
func New[T any]() *Table[T] {
	return &Table[T]{
		entries: make(map[int64]T),
		nextID:  1,
	}
}

// Next advances the counter and returns the allocated ID.
//
// Thread-safe.
func (t *Table[T]) Next() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	return id
}

// Peek returns the ID the next call to Next will allocate.
//
// Thread-safe.
func (t *Table[T]) Peek() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nextID
}

// Store puts v under key, replacing any previous value.
//
// Thread-safe.
func (t *Table[T]) Store(key int64, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = v
}

// Lookup retrieves the value stored under key.
//
// Thread-safe.
func (t *Table[T]) Lookup(key int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

// Take removes key and returns the value that was stored under it.
// The second result is false if key was not present.
//
// Thread-safe.
func (t *Table[T]) Take(key int64) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	return v, ok
}

// Unregister removes key. Removing an absent key is a no-op.
//
// Thread-safe.
func (t *Table[T]) Unregister(key int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Count returns the number of stored entries.
// Useful for debugging and testing leaks.
//
// Thread-safe.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Keys returns a snapshot of the stored keys in no particular order.
//
// Thread-safe.
func (t *Table[T]) Keys() []int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]int64, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

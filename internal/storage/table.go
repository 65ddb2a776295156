package storage

import (
	"iter"
	"maps"
)

// Table is the mutable backing table of a single shard. It is NOT safe
// for concurrent use: the owning shard serializes access through its
// lock, so the table itself carries none.
type Table[K comparable, V any] struct {
	data map[K]V
}

// NewTable creates an empty table. The capacity hint pre-sizes the
// backing map; zero means no hint.
func NewTable[K comparable, V any](capacity int) *Table[K, V] {
	return &Table[K, V]{
		data: make(map[K]V, capacity),
	}
}

// Get retrieves the value for key.
// The second result reports whether the key was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	value, ok := t.data[key]
	return value, ok
}

// Put stores value under key, overwriting any existing entry.
// Returns the previous value and whether one existed.
func (t *Table[K, V]) Put(key K, value V) (V, bool) {
	previous, existed := t.data[key]
	t.data[key] = value
	return previous, existed
}

// Delete removes the entry for key.
// Returns the removed value and whether one existed.
func (t *Table[K, V]) Delete(key K) (V, bool) {
	removed, existed := t.data[key]
	if existed {
		delete(t.data, key)
	}
	return removed, existed
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	return len(t.data)
}

// Clear removes all entries, keeping the allocated capacity.
func (t *Table[K, V]) Clear() {
	clear(t.data)
}

// Freeze copies every entry into an immutable Frozen table. The caller
// must hold the owning shard's lock for the duration of the call; the
// result is then safe to read without any synchronization.
func (t *Table[K, V]) Freeze() Frozen[K, V] {
	return Frozen[K, V]{data: maps.Clone(t.data)}
}

// Frozen is an immutable table: a point-in-time copy of one shard's
// entries. It is never mutated after Freeze returns, which is what makes
// unsynchronized concurrent reads safe. Values are shared, not deep
// copied; callers that mutate values through shared pointers forfeit
// snapshot isolation for those values.
type Frozen[K comparable, V any] struct {
	data map[K]V
}

// Get retrieves the value for key from the frozen table.
func (f Frozen[K, V]) Get(key K) (V, bool) {
	value, ok := f.data[key]
	return value, ok
}

// Len returns the number of frozen entries.
func (f Frozen[K, V]) Len() int {
	return len(f.data)
}

// All returns an iterator over every frozen entry in unspecified order.
// The sequence is restartable: each range over it walks the full table.
func (f Frozen[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, value := range f.data {
			if !yield(key, value) {
				return
			}
		}
	}
}

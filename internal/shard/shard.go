package shard

import (
	"sync"
	"sync/atomic"

	"github.com/dreamware/shardmap/internal/storage"
)

// Shard is one independently-locked partition of the map's key space.
// Each shard owns its backing table exclusively: every access goes
// through the shard's mutex, and no operation ever takes a second
// shard's lock, so deadlocks are impossible by construction.
type Shard[K comparable, V any] struct {
	ID    int    // Shard index, fixed at construction
	stats Stats  // Operation counters, updated atomically
	mu    sync.Mutex
	table *storage.Table[K, V]
}

// Stats tracks operation counts for a shard.
// Counters are cumulative since shard creation.
type Stats struct {
	Gets      uint64 // Number of get operations
	Puts      uint64 // Number of put operations
	Deletes   uint64 // Number of delete operations
	Snapshots uint64 // Number of snapshot copies taken
}

// Info contains point-in-time metadata about a shard.
type Info struct {
	ID   int // Shard index
	Keys int // Number of entries currently held
}

// New creates an empty shard with the given index.
// The capacity hint pre-sizes the backing table; zero means no hint.
func New[K comparable, V any](id, capacity int) *Shard[K, V] {
	return &Shard[K, V]{
		ID:    id,
		table: storage.NewTable[K, V](capacity),
	}
}

// Get retrieves the value for key.
// Blocks only on this shard's lock, held for the single table lookup.
func (s *Shard[K, V]) Get(key K) (V, bool) {
	atomic.AddUint64(&s.stats.Gets, 1)
	s.mu.Lock()
	value, ok := s.table.Get(key)
	s.mu.Unlock()
	return value, ok
}

// Put stores value under key, overwriting any existing entry.
// Returns the previous value and whether one existed.
func (s *Shard[K, V]) Put(key K, value V) (V, bool) {
	atomic.AddUint64(&s.stats.Puts, 1)
	s.mu.Lock()
	previous, existed := s.table.Put(key, value)
	s.mu.Unlock()
	return previous, existed
}

// Delete removes the entry for key.
// Returns the removed value and whether one existed.
func (s *Shard[K, V]) Delete(key K) (V, bool) {
	atomic.AddUint64(&s.stats.Deletes, 1)
	s.mu.Lock()
	removed, existed := s.table.Delete(key)
	s.mu.Unlock()
	return removed, existed
}

// Contains reports whether key is present.
func (s *Shard[K, V]) Contains(key K) bool {
	atomic.AddUint64(&s.stats.Gets, 1)
	s.mu.Lock()
	_, ok := s.table.Get(key)
	s.mu.Unlock()
	return ok
}

// Len returns the number of entries currently in the shard.
func (s *Shard[K, V]) Len() int {
	s.mu.Lock()
	n := s.table.Len()
	s.mu.Unlock()
	return n
}

// Clear removes all entries from the shard.
func (s *Shard[K, V]) Clear() {
	s.mu.Lock()
	s.table.Clear()
	s.mu.Unlock()
}

// Snapshot copies the shard's entries into an immutable frozen table.
// The copy runs under the shard's lock: it observes every write that
// completed before the call and none that starts after it. The lock is
// held for one shard's copy only, which bounds the worst-case write
// stall during a map-wide export to a single shard, never the whole map.
func (s *Shard[K, V]) Snapshot() storage.Frozen[K, V] {
	atomic.AddUint64(&s.stats.Snapshots, 1)
	s.mu.Lock()
	frozen := s.table.Freeze()
	s.mu.Unlock()
	return frozen
}

// GetStats returns the shard's cumulative operation counters.
func (s *Shard[K, V]) GetStats() Stats {
	return Stats{
		Gets:      atomic.LoadUint64(&s.stats.Gets),
		Puts:      atomic.LoadUint64(&s.stats.Puts),
		Deletes:   atomic.LoadUint64(&s.stats.Deletes),
		Snapshots: atomic.LoadUint64(&s.stats.Snapshots),
	}
}

// GetInfo returns point-in-time metadata about the shard.
func (s *Shard[K, V]) GetInfo() Info {
	return Info{
		ID:   s.ID,
		Keys: s.Len(),
	}
}

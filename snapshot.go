package shardmap

import (
	"iter"

	"github.com/dreamware/shardmap/internal/router"
	"github.com/dreamware/shardmap/internal/storage"
)

// Snapshot is an immutable point-in-time copy of a Map, safe for
// unsynchronized concurrent reads. Nothing mutates a Snapshot after
// ExportSnapshot returns it: reads acquire no locks and cannot be
// blocked by live writers or by construction of the next snapshot.
//
// A Snapshot stays valid indefinitely. Readers may hold one across
// later exports; they keep observing the frozen state it was taken
// from.
type Snapshot[K comparable, V any] struct {
	// router is the owning map's router, so snapshot lookups route
	// keys exactly like live lookups did at export time.
	router router.Router[K]

	// shards holds one frozen table per shard, index-aligned with
	// shard indices.
	shards []storage.Frozen[K, V]
}

// Get retrieves the value for key as of the snapshot's export.
// Lock-free: routes the key and looks it up in the aligned frozen
// table.
func (s *Snapshot[K, V]) Get(key K) (V, bool) {
	return s.shards[s.router.Route(key)].Get(key)
}

// Contains reports whether key was present at export time.
func (s *Snapshot[K, V]) Contains(key K) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the total number of entries in the snapshot.
func (s *Snapshot[K, V]) Len() int {
	total := 0
	for _, frozen := range s.shards {
		total += frozen.Len()
	}
	return total
}

// Shards returns the number of shards the snapshot was exported from.
func (s *Snapshot[K, V]) Shards() int {
	return len(s.shards)
}

// All returns a lazy iterator over every entry in the snapshot, in
// shard-index order and unspecified order within a shard. The sequence
// is finite and restartable: each range over it yields every entry
// exactly once. Intended for bulk consumers such as serializers.
func (s *Snapshot[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, frozen := range s.shards {
			for key, value := range frozen.All() {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

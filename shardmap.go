package shardmap

import (
	"fmt"
	"sync/atomic"

	"github.com/dreamware/shardmap/internal/router"
	"github.com/dreamware/shardmap/internal/shard"
	"github.com/dreamware/shardmap/internal/storage"
)

// Map is a concurrent hash map partitioned into independently-locked
// shards. Writers contend only within a shard, never across shards, and
// point-in-time snapshots can be exported for lock-free bulk reads
// without stalling the whole map.
//
// A Map must be created with New; the zero value is not usable.
// All methods are safe for concurrent use.
type Map[K comparable, V any] struct {
	// router maps keys to shard indices. Shared by the live paths,
	// the export loop, and every exported snapshot, so a key's shard
	// assignment never changes for the lifetime of the map.
	router router.Router[K]

	// shards is the fixed array of partitions, index-aligned with the
	// router's output. Never resized after construction.
	shards []*shard.Shard[K, V]

	// current holds the most recently exported snapshot, nil before
	// the first export. Swapped atomically so snapshot handles are
	// acquired lock-free.
	current atomic.Pointer[Snapshot[K, V]]
}

// New creates an empty map.
//
// Without options the shard count defaults to the next power of two at
// or above four shards per CPU and keys are hashed with a per-map
// seeded hash. A configured shard count below one fails with
// ErrInvalidShardCount.
func New[K comparable, V any](opts ...Option[K]) (*Map[K, V], error) {
	cfg := config[K]{shards: defaultShardCount()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.shards < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, cfg.shards)
	}
	if cfg.hasher == nil {
		cfg.hasher = router.Maphash[K]()
	}

	perShard := 0
	if cfg.capacity > 0 {
		perShard = (cfg.capacity + cfg.shards - 1) / cfg.shards
	}

	shards := make([]*shard.Shard[K, V], cfg.shards)
	for i := range shards {
		shards[i] = shard.New[K, V](i, perShard)
	}

	return &Map[K, V]{
		router: router.New(cfg.hasher, cfg.shards),
		shards: shards,
	}, nil
}

// Get retrieves the value for key from the live map.
// The second result reports whether the key was present; an absent key
// is a normal outcome, not an error.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.shards[m.router.Route(key)].Get(key)
}

// Set stores value under key, overwriting any existing entry.
// Returns the previous value and whether one existed. Blocks only on
// the owning shard's lock; writes to other shards proceed concurrently.
func (m *Map[K, V]) Set(key K, value V) (V, bool) {
	return m.shards[m.router.Route(key)].Put(key, value)
}

// Delete removes the entry for key.
// Returns the removed value and whether one existed.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.shards[m.router.Route(key)].Delete(key)
}

// Contains reports whether key is present in the live map.
func (m *Map[K, V]) Contains(key K) bool {
	return m.shards[m.router.Route(key)].Contains(key)
}

// Len returns the total number of entries across all shards. Shards are
// counted one at a time, so under concurrent writes the result is a
// per-shard-consistent estimate, same as every cross-shard read here.
func (m *Map[K, V]) Len() int {
	total := 0
	for _, s := range m.shards {
		total += s.Len()
	}
	return total
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool {
	for _, s := range m.shards {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}

// Clear removes all entries, one shard at a time.
func (m *Map[K, V]) Clear() {
	for _, s := range m.shards {
		s.Clear()
	}
}

// Shards returns the map's fixed shard count.
func (m *Map[K, V]) Shards() int {
	return m.router.Shards()
}

// ExportSnapshot copies the map into an immutable Snapshot, publishes
// it as the current snapshot, and returns it.
//
// Shards are copied sequentially, each under its own lock: at no point
// is more than one shard locked, so writers to other shards are never
// stalled and the worst-case write stall is the copy time of a single
// shard. The result is therefore per-shard consistent but not globally
// linearizable — a pair of writes to two different shards racing the
// export may be reflected partially. The map provides no cross-key
// atomicity in the first place, so no caller can observe the
// difference through its contract.
//
// Superseded snapshots stay alive as long as any reader holds them and
// are reclaimed by the garbage collector afterwards.
func (m *Map[K, V]) ExportSnapshot() *Snapshot[K, V] {
	frozen := make([]storage.Frozen[K, V], len(m.shards))
	for i, s := range m.shards {
		frozen[i] = s.Snapshot()
	}

	snap := &Snapshot[K, V]{
		router: m.router,
		shards: frozen,
	}
	m.current.Store(snap)
	return snap
}

// CurrentSnapshot returns the most recently exported snapshot. The
// second result is false if no export has happened yet, which is the
// normal state of a freshly constructed map, not an error.
//
// The read is lock-free and monotonic: a call that begins after an
// export returns sees that snapshot or a newer one.
func (m *Map[K, V]) CurrentSnapshot() (*Snapshot[K, V], bool) {
	snap := m.current.Load()
	return snap, snap != nil
}

// Stats returns the map's cumulative operation counters, summed across
// shards.
func (m *Map[K, V]) Stats() shard.Stats {
	var total shard.Stats
	for _, s := range m.shards {
		st := s.GetStats()
		total.Gets += st.Gets
		total.Puts += st.Puts
		total.Deletes += st.Deletes
		total.Snapshots += st.Snapshots
	}
	return total
}

// Info returns per-shard metadata, index-aligned with shard indices.
// Useful for inspecting key distribution across shards.
func (m *Map[K, V]) Info() []shard.Info {
	infos := make([]shard.Info, len(m.shards))
	for i, s := range m.shards {
		infos[i] = s.GetInfo()
	}
	return infos
}

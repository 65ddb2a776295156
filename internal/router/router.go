package router

import (
	"github.com/dolthub/maphash"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Hasher computes an unsigned 64-bit hash of a key. It must be
// deterministic: the same key always produces the same hash for the
// lifetime of the hasher. Distribution quality directly determines how
// evenly keys spread across shards.
type Hasher[K any] func(key K) uint64

// Router maps keys to shard indices in [0, N). It is a pure function of
// the key and the shard count: no internal state changes after
// construction, so the write path, the read path, and the snapshot path
// can all share one Router and agree on every key's shard.
type Router[K any] struct {
	hash Hasher[K]
	n    int
}

// New creates a Router over n shards using the given hash function.
// The caller must guarantee n >= 1; the Router does not re-validate it.
func New[K any](hash Hasher[K], n int) Router[K] {
	return Router[K]{hash: hash, n: n}
}

// Route returns the shard index for key.
// Plain modulo rather than bit masking, so any n >= 1 works.
func (r Router[K]) Route(key K) int {
	return int(r.hash(key) % uint64(r.n))
}

// Shards returns the shard count the Router was built with.
func (r Router[K]) Shards() int {
	return r.n
}

// Maphash returns the default Hasher for comparable keys. The hash is
// seeded per call, so routers that must agree on key placement have to
// share the returned Hasher, not construct their own.
func Maphash[K comparable]() Hasher[K] {
	h := maphash.NewHasher[K]()
	return func(key K) uint64 {
		return h.Hash(key)
	}
}

// StringHasher hashes string keys with xxh3. Unlike Maphash it is
// unseeded and therefore stable across hasher instances and process
// restarts.
func StringHasher(key string) uint64 {
	return xxh3.HashString(key)
}

// IntHasher hashes integer keys by running the value through a 64-bit
// finalizer (murmur3 fmix64). Sequential keys would otherwise land on
// sequential shards, defeating contention spreading under range-heavy
// workloads.
func IntHasher[K constraints.Integer](key K) uint64 {
	x := uint64(key)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

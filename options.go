package shardmap

import (
	"runtime"

	"github.com/dreamware/shardmap/internal/router"
)

// Hasher computes an unsigned 64-bit hash of a key. It must be
// deterministic for the lifetime of the map it is installed in.
type Hasher[K any] func(key K) uint64

// Option configures a Map during construction.
type Option[K comparable] func(*config[K])

type config[K comparable] struct {
	shards   int
	capacity int
	hasher   router.Hasher[K]
}

// WithShards fixes the shard count. The count is immutable for the
// map's lifetime; it need not be a power of two. Counts below one make
// New fail with ErrInvalidShardCount.
func WithShards[K comparable](n int) Option[K] {
	return func(c *config[K]) {
		c.shards = n
	}
}

// WithCapacity hints the expected total entry count. The hint is split
// evenly across shards to pre-size their backing tables; it does not
// bound the map's growth.
func WithCapacity[K comparable](hint int) Option[K] {
	return func(c *config[K]) {
		c.capacity = hint
	}
}

// WithHasher replaces the default key hasher. Useful when the caller
// has a cheaper or stabler hash for its key type, such as an xxh3 pass
// over string keys.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(c *config[K]) {
		c.hasher = router.Hasher[K](h)
	}
}

// defaultShardCount sizes the map for the machine it runs on: the next
// power of two at or above four shards per available CPU.
func defaultShardCount() int {
	return nextPowerOfTwo(4 * runtime.GOMAXPROCS(0))
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Package router implements deterministic key-to-shard routing for the
// sharded map, mapping every key to exactly one shard index in [0, N).
//
// # Overview
//
// Routing is a pure function: shard = hash(key) mod N. The Router holds
// no mutable state, so a single instance is shared by the live write
// path, the live read path, the snapshot export loop, and the lock-free
// snapshot read path. Sharing one Router (and therefore one hash seed)
// is what guarantees a key's shard assignment never changes across
// operations or across snapshot generations.
//
// # Hashers
//
// The hash function is pluggable through the Hasher type:
//
//   - Maphash: default for any comparable key type, seeded per hasher
//   - StringHasher: xxh3 for string keys, unseeded and stable
//   - IntHasher: 64-bit finalizer for integer keys
//
// A Hasher must be deterministic for the lifetime of the map but is
// free to differ between maps; nothing in the system compares hashes
// across map instances.
package router

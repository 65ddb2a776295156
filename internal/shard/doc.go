// Package shard implements the unit of write concurrency for the
// sharded map: a mutex-guarded partition that exclusively owns a subset
// of the key space.
//
// # Overview
//
// A shard pairs one storage.Table with one sync.Mutex. The mutex is the
// only synchronization in the live data path: concurrent writers to the
// same shard serialize on it, writers to different shards never touch
// each other. The router, not the shard, decides which keys a shard
// owns; the shard just stores whatever it is handed.
//
// # Locking discipline
//
// Every operation acquires this shard's lock and no other, holds it for
// an O(1) table operation (or an O(len) copy during Snapshot), and
// releases it before returning. No operation recurses into the shard
// while holding the lock, and nothing in the system holds two shard
// locks at once.
//
// # Statistics
//
// Operation counters are updated with atomic adds outside the mutex, so
// reading stats never contends with the data path. Counts are
// monotonically increasing and cumulative since shard creation.
package shard

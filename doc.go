// Package shardmap provides a concurrent hash map partitioned into
// independently-locked shards, with immutable point-in-time snapshots
// that can be read lock-free while writes continue.
//
// # Overview
//
// The map splits its key space across N shards, each guarded by its own
// mutex. A deterministic router assigns every key to exactly one shard,
// so writers to different shards never contend and no operation ever
// holds more than one lock.
//
//	┌───────────────────────────────────────────┐
//	│                   Map                     │
//	├───────────────────────────────────────────┤
//	│  Router: shard = hash(key) mod N          │
//	│                                           │
//	│  ┌────────┐ ┌────────┐     ┌────────┐    │
//	│  │Shard 0 │ │Shard 1 │ ... │Shard N-1│   │
//	│  │ mutex  │ │ mutex  │     │ mutex  │    │
//	│  │ table  │ │ table  │     │ table  │    │
//	│  └────────┘ └────────┘     └────────┘    │
//	│                                           │
//	│  current ──► Snapshot (immutable,         │
//	│              lock-free reads)             │
//	└───────────────────────────────────────────┘
//
// ExportSnapshot freezes each shard in turn — lock, copy, unlock — and
// publishes the assembled Snapshot through an atomic pointer swap.
// Readers obtain snapshot handles without locks via CurrentSnapshot and
// read them without any synchronization, concurrently with live writes
// and with later exports.
//
// # Consistency
//
// Within one shard, operations are linearizable: the shard's mutex
// totally orders them. Across shards there is no total order, and a
// snapshot is accordingly per-shard consistent rather than globally
// linearizable: export never locks the whole map, so two writes to
// different shards racing an export may land in different snapshot
// generations. This is the deliberate trade of transactional snapshot
// consistency for write throughput; the map offers no multi-key
// atomicity anywhere else either.
//
// # Usage
//
//	m, err := shardmap.New[string, int](shardmap.WithShards[string](16))
//	if err != nil {
//		// only possible with a shard count below 1
//	}
//
//	m.Set("answer", 42)
//	v, ok := m.Get("answer")
//
//	snap := m.ExportSnapshot()
//	for k, v := range snap.All() {
//		// bulk consumption, lock-free
//	}
//
// Persistence, cross-process sharing, distributed partitioning, and
// multi-key transactions are out of scope: this is an in-process data
// structure, not a database.
package shardmap

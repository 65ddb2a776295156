// Package storage provides the backing tables for the sharded map: a
// mutable Table owned by exactly one shard, and an immutable Frozen
// table produced by copying a Table at a point in time.
//
// # Overview
//
// The split mirrors the two access regimes of the system:
//
//	┌─────────────────────────────────────┐
//	│              Shard                  │
//	│  (holds the lock, owns a Table)     │
//	└─────────────────┬───────────────────┘
//	                  │ Freeze() under lock
//	                  ▼
//	┌─────────────────────────────────────┐
//	│             Frozen                  │
//	│  (immutable, read lock-free,        │
//	│   shared by snapshots and readers)  │
//	└─────────────────────────────────────┘
//
// Table deliberately carries no lock of its own: the shard that owns it
// is the single synchronization point, and keeping the table plain
// avoids double locking on every operation.
//
// Frozen is safe for unsynchronized concurrent reads precisely because
// nothing can write to it — there is no mutating method on the type.
//
// # Ownership
//
// A Table belongs to one shard for the shard's whole lifetime. A Frozen
// table is created during snapshot export and is jointly owned by the
// map snapshot containing it and every reader holding that snapshot;
// the garbage collector reclaims it when the last reference drops.
package storage

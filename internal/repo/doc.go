// Package repo provides typed repositories over the versioned store, one
// per persisted entity family, plus the migration registry that upgrades
// data written under older schema versions.
//
// Repositories hold an in-memory cache hydrated by Load. Mutators update
// the cache and complete the persist before returning, so external
// callers may fire-and-forget without ever observing an inconsistent
// window between two writes to the same key.
//
// CONCURRENCY: repositories are single-writer by design. Exactly one
// logical thread of control (the embedding UI or CLI action) mutates a
// given repository; there is no locking because there is no concurrent
// writer to race against. The only sequential hazard - two rapid writes
// to the same key - is handled by each mutator awaiting its persist.
//
// Repositories are constructed explicitly and passed by reference, never
// accessed as ambient globals, so tests can run isolated instances.
package repo

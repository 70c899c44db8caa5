// Package store provides SQLite-backed durable key-value storage with
// schema-version envelopes.
//
// Every value is persisted as JSON text of the form
//
//	{"version": <int>, "data": <entity-shaped JSON>}
//
// where version is entity.CurrentSchemaVersion at write time. Legacy JSON
// lacking both the "version" and "data" keys is still readable and treated
// as version 0.
//
// # Failure posture
//
// The store is local-first and best-effort: it never lets a storage fault
// reach the caller.
//
//   - A value that fails to parse as JSON is corrupted: the entry is
//     deleted and the read reports absent (self-healing). Reading the key
//     again reports absent without error.
//   - A failed write is logged and swallowed; callers never block UI work
//     on durability.
//   - A version mismatch with no migration path is data loss for that key
//     only: the read reports absent and the event is logged.
//
// Migration is pull-based: it runs lazily on the next read of a key, never
// as a startup sweep, so entities the user never touches never pay a
// migration cost. A successful migration is immediately re-persisted under
// the current version (self-healing on read).
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single connection: SQLite supports one writer at a time
//
// The SQLite PRAGMA user_version tracks the database layout and is
// independent of the entity schema version carried in each envelope.
package store

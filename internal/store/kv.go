package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// envelope is the bit-exact on-device wrapper around every stored value.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Migration transforms data persisted under an older schema version into
// the current shape. It must be pure and total over the declared
// old-version range: either it produces a value conforming exactly to the
// current shape, or it returns ok=false, signaling "unrecoverable,
// discard."
//
// Migration functions are the only place shape assumptions about old data
// may be encoded; all other code operates only on current shapes.
type Migration[T any] func(oldVersion int, old json.RawMessage) (T, bool)

// Read looks up the value stored under key and decodes it into T,
// unwrapping the version envelope if present. No version check is
// performed; use ReadVersioned when the caller needs migration semantics.
//
// Absent keys report ok=false, not an error. A value that fails to parse
// as JSON is corrupted: the entry is deleted and ok=false is reported.
// Corruption never propagates to the caller.
func Read[T any](ctx context.Context, s *Store, key string) (value T, ok bool) {
	raw, found := s.getRaw(ctx, key)
	if !found {
		return value, false
	}

	data, _, valid := splitEnvelope(raw)
	if !valid {
		s.healCorrupt(ctx, key)
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		// Valid JSON in an unexpected shape. Not corruption - leave the
		// entry in place for a versioned read to migrate.
		s.logger.Warn("stored value does not match requested shape",
			"key", key, "error", err)
		var zero T
		return zero, false
	}
	return value, true
}

// Write persists value under key wrapped in the current version envelope:
// {"version": CURRENT, "data": <value>}.
//
// Write is best-effort: a persistence failure is logged and swallowed, it
// never reaches the caller. The write itself completes (or fails) before
// Write returns, so back-to-back writes to the same key are ordered.
func Write(ctx context.Context, s *Store, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to serialize value", "key", key, "error", err)
		return
	}
	env, err := json.Marshal(envelope{Version: entity.CurrentSchemaVersion, Data: data})
	if err != nil {
		s.logger.Warn("failed to serialize envelope", "key", key, "error", err)
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(env))
	if err != nil {
		s.logger.Warn("failed to persist value", "key", key, "error", err)
	}
}

// ReadVersioned looks up key, unwraps the version envelope, and applies
// migration semantics:
//
//   - version == current: the data is returned unchanged.
//   - version != current and migrate is non-nil: migrate runs; a produced
//     value is immediately re-persisted under the current version
//     (self-healing on read) and returned; ok=false from migrate means
//     unmigratable and reports absent.
//   - version != current and migrate is nil: reports absent. Wrong-shape
//     data is never silently applied.
//   - no envelope at all (legacy unversioned JSON): treated as version 0
//     and migrated the same way.
func ReadVersioned[T any](ctx context.Context, s *Store, key string, migrate Migration[T]) (value T, ok bool) {
	raw, found := s.getRaw(ctx, key)
	if !found {
		return value, false
	}

	data, version, valid := splitEnvelope(raw)
	if !valid {
		s.healCorrupt(ctx, key)
		return value, false
	}

	if version == entity.CurrentSchemaVersion {
		if err := json.Unmarshal(data, &value); err != nil {
			s.logger.Warn("stored value does not match current shape",
				"key", key, "version", version, "error", err)
			var zero T
			return zero, false
		}
		return value, true
	}

	if migrate == nil {
		s.logger.Warn("schema version mismatch with no migration path",
			"key", key, "stored", version, "current", entity.CurrentSchemaVersion)
		return value, false
	}

	migrated, ok := migrate(version, data)
	if !ok {
		s.logger.Warn("stored value is unmigratable, discarding",
			"key", key, "stored", version)
		var zero T
		return zero, false
	}

	// Self-heal: re-persist under the current version so the migration
	// never runs again for this key.
	Write(ctx, s, key, migrated)
	return migrated, true
}

// Remove deletes the entry under key. Best-effort and non-throwing:
// failures are logged and swallowed.
func (s *Store) Remove(ctx context.Context, key string) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		s.logger.Warn("failed to remove key", "key", key, "error", err)
	}
}

// Clear deletes every entry. Best-effort and non-throwing.
func (s *Store) Clear(ctx context.Context) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		s.logger.Warn("failed to clear store", "error", err)
	}
}

// Has reports whether any value (even a corrupt one) exists under key.
// Used for testing self-healing.
func (s *Store) Has(ctx context.Context, key string) bool {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, key).Scan(&n)
	if err != nil {
		s.logger.Warn("failed to check key", "key", key, "error", err)
		return false
	}
	return n > 0
}

// getRaw fetches the raw stored text for key. Absent is not an error;
// query failures are logged and reported as absent.
func (s *Store) getRaw(ctx context.Context, key string) (string, bool) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("failed to read key", "key", key, "error", err)
		return "", false
	}
	return raw, true
}

// healCorrupt deletes an unparseable entry so subsequent reads are clean.
func (s *Store) healCorrupt(ctx context.Context, key string) {
	s.logger.Warn("corrupt entry, deleting", "key", key)
	s.Remove(ctx, key)
}

// splitEnvelope separates a raw stored value into payload data and schema
// version. A JSON object carrying a numeric "version" and a "data" key is
// an envelope; any other valid JSON is legacy unversioned data, reported
// as version 0 with the whole value as payload. valid=false means the raw
// text is not JSON at all (corruption).
func splitEnvelope(raw string) (data json.RawMessage, version int, valid bool) {
	trimmed := []byte(raw)
	if !json.Valid(trimmed) {
		return nil, 0, false
	}

	var probe struct {
		Version *int             `json:"version"`
		Data    *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Version != nil && probe.Data != nil {
		return *probe.Data, *probe.Version, true
	}

	return json.RawMessage(trimmed), 0, true
}

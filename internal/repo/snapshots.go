package repo

import (
	"context"
	"log/slog"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// Snapshots caches the last-fetched remote snapshot per store name. It is
// an opportunistic read-through cache with no TTL eviction: entries are
// replaced on successful refetch and otherwise served stale (the serving
// policy lives in directory.Service; this type is just the cache).
//
// Introduced at schema v2; no migration path.
type Snapshots struct {
	store    *store.Store
	logger   *slog.Logger
	byStore  map[string]entity.Snapshot
	hydrated bool
}

// NewSnapshots creates the repository.
func NewSnapshots(s *store.Store, logger *slog.Logger) *Snapshots {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshots{store: s, logger: logger, byStore: map[string]entity.Snapshot{}}
}

// Load hydrates the cache. Idempotent; see Profile.Load.
func (r *Snapshots) Load(ctx context.Context) {
	m, ok := store.ReadVersioned[map[string]entity.Snapshot](ctx, r.store, keySnapshots, nil)
	if !ok || m == nil {
		m = map[string]entity.Snapshot{}
	}
	r.byStore = m
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Snapshots) IsHydrated() bool { return r.hydrated }

// Get returns the cached snapshot for a store name.
func (r *Snapshots) Get(storeName string) (entity.Snapshot, bool) {
	snap, ok := r.byStore[storeName]
	return snap, ok
}

// Put replaces the cached snapshot for its store name.
func (r *Snapshots) Put(ctx context.Context, snap entity.Snapshot) {
	r.byStore[snap.StoreName] = snap
	store.Write(ctx, r.store, keySnapshots, r.byStore)
}

// RemoveAll empties the cache.
func (r *Snapshots) RemoveAll(ctx context.Context) {
	r.byStore = map[string]entity.Snapshot{}
	r.store.Remove(ctx, keySnapshots)
}

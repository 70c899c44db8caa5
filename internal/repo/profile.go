package repo

import (
	"context"
	"log/slog"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// Profile is the singleton sender-profile repository.
type Profile struct {
	store    *store.Store
	logger   *slog.Logger
	current  entity.Profile
	present  bool
	hydrated bool
}

// NewProfile creates the repository. A nil logger means slog.Default().
func NewProfile(s *store.Store, logger *slog.Logger) *Profile {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profile{store: s, logger: logger}
}

// Load hydrates the cache from the store, running the profile migration
// for data written under older schema versions. Idempotent and safe to
// call again after a reset; the hydrated flag reflects a completed load
// even when the result was empty.
func (r *Profile) Load(ctx context.Context) {
	p, ok := store.ReadVersioned(ctx, r.store, keyProfile, profileMigration)
	r.current = p
	r.present = ok
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Profile) IsHydrated() bool { return r.hydrated }

// Get returns the profile and whether one exists.
func (r *Profile) Get() (entity.Profile, bool) {
	return r.current, r.present
}

// Set replaces the profile. The persist completes before Set returns.
func (r *Profile) Set(ctx context.Context, p entity.Profile) {
	r.current = p
	r.present = true
	store.Write(ctx, r.store, keyProfile, p)
}

// Update applies fn to the current profile (zero value when absent) and
// persists the result.
func (r *Profile) Update(ctx context.Context, fn func(entity.Profile) entity.Profile) entity.Profile {
	r.Set(ctx, fn(r.current))
	return r.current
}

// Clear removes the profile. Only used by a full reset.
func (r *Profile) Clear(ctx context.Context) {
	r.current = entity.Profile{}
	r.present = false
	r.store.Remove(ctx, keyProfile)
}

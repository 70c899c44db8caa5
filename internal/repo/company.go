package repo

import (
	"context"
	"log/slog"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// Company holds the at-most-one company link. Presence means the device
// is associated with a remote multi-store organization; absence means
// standalone mode.
//
// The link was introduced at schema v2, so no migration path exists:
// older-versioned data under this key reports absent.
type Company struct {
	store    *store.Store
	logger   *slog.Logger
	link     entity.CompanyLink
	present  bool
	hydrated bool
}

// NewCompany creates the repository.
func NewCompany(s *store.Store, logger *slog.Logger) *Company {
	if logger == nil {
		logger = slog.Default()
	}
	return &Company{store: s, logger: logger}
}

// Load hydrates the cache. Idempotent; see Profile.Load.
func (r *Company) Load(ctx context.Context) {
	link, ok := store.ReadVersioned[entity.CompanyLink](ctx, r.store, keyCompany, nil)
	r.link = link
	r.present = ok
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Company) IsHydrated() bool { return r.hydrated }

// Get returns the link and whether the device is linked.
func (r *Company) Get() (entity.CompanyLink, bool) {
	return r.link, r.present
}

// Set records the link after a successful create or join.
func (r *Company) Set(ctx context.Context, link entity.CompanyLink) {
	r.link = link
	r.present = true
	store.Write(ctx, r.store, keyCompany, link)
}

// Clear detaches the device, returning it to standalone mode.
func (r *Company) Clear(ctx context.Context) {
	r.link = entity.CompanyLink{}
	r.present = false
	r.store.Remove(ctx, keyCompany)
}

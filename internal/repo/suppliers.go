package repo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// SupplierFields carries the optional fields of an upsert. A nil pointer
// means "not supplied" and never overwrites a previously stored value.
type SupplierFields struct {
	Email *string
}

// Suppliers is the supplier collection repository. Name-based operations
// are case-insensitive and whitespace-trimmed (entity.NormalizeName).
type Suppliers struct {
	store    *store.Store
	ids      entity.IDGenerator
	logger   *slog.Logger
	items    []entity.Supplier
	hydrated bool
}

// NewSuppliers creates the repository.
func NewSuppliers(s *store.Store, ids entity.IDGenerator, logger *slog.Logger) *Suppliers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suppliers{store: s, ids: ids, logger: logger}
}

// Load hydrates the cache. Idempotent; see Profile.Load.
func (r *Suppliers) Load(ctx context.Context) {
	items, ok := store.ReadVersioned(ctx, r.store, keySuppliers, suppliersMigration(r.ids))
	if !ok {
		items = nil
	}
	r.items = items
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Suppliers) IsHydrated() bool { return r.hydrated }

// All returns a copy of the collection in stored order.
func (r *Suppliers) All() []entity.Supplier {
	out := make([]entity.Supplier, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the supplier with the given id.
func (r *Suppliers) Get(id string) (entity.Supplier, bool) {
	for _, s := range r.items {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Supplier{}, false
}

// FindByName returns the first supplier whose name matches under
// normalization.
func (r *Suppliers) FindByName(name string) (entity.Supplier, bool) {
	norm := entity.NormalizeName(name)
	for _, s := range r.items {
		if entity.NormalizeName(s.Name) == norm {
			return s, true
		}
	}
	return entity.Supplier{}, false
}

// UpsertByName updates the supplier matching name (case-insensitive,
// trimmed) in place, or appends a new one with a freshly generated id.
// Only explicitly supplied fields overwrite; a nil field preserves the
// stored value. Returns the resulting entry. The persist completes
// before UpsertByName returns.
func (r *Suppliers) UpsertByName(ctx context.Context, name string, fields SupplierFields) entity.Supplier {
	norm := entity.NormalizeName(name)
	for i := range r.items {
		if entity.NormalizeName(r.items[i].Name) == norm {
			if fields.Email != nil {
				r.items[i].Email = *fields.Email
			}
			r.persist(ctx)
			return r.items[i]
		}
	}

	s := entity.Supplier{ID: r.ids.NewID(), Name: strings.TrimSpace(name)}
	if fields.Email != nil {
		s.Email = *fields.Email
	}
	r.items = append(r.items, s)
	r.persist(ctx)
	return s
}

// RemoveByID deletes the supplier with the given id. Session items that
// referenced it keep their supplierId; they simply stop resolving for
// grouping purposes.
func (r *Suppliers) RemoveByID(ctx context.Context, id string) bool {
	for i, s := range r.items {
		if s.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist(ctx)
			return true
		}
	}
	return false
}

// RemoveAll deletes every supplier.
func (r *Suppliers) RemoveAll(ctx context.Context) {
	r.items = nil
	r.store.Remove(ctx, keySuppliers)
}

func (r *Suppliers) persist(ctx context.Context) {
	store.Write(ctx, r.store, keySuppliers, r.items)
}

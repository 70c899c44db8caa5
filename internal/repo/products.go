package repo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// ProductFields carries the optional fields of a product upsert. A nil
// pointer means "not supplied" and never overwrites a stored value.
type ProductFields struct {
	LastSupplierID *string
	LastQty        *int
}

// Products is the product-history repository: an autocomplete/recall aid
// holding at most one record per normalized name. Not authoritative for
// any session.
type Products struct {
	store    *store.Store
	ids      entity.IDGenerator
	logger   *slog.Logger
	items    []entity.Product
	hydrated bool
}

// NewProducts creates the repository.
func NewProducts(s *store.Store, ids entity.IDGenerator, logger *slog.Logger) *Products {
	if logger == nil {
		logger = slog.Default()
	}
	return &Products{store: s, ids: ids, logger: logger}
}

// Load hydrates the cache. Idempotent; see Profile.Load.
func (r *Products) Load(ctx context.Context) {
	items, ok := store.ReadVersioned(ctx, r.store, keyProducts, productsMigration(r.ids))
	if !ok {
		items = nil
	}
	r.items = items
	r.hydrated = true
}

// IsHydrated reports whether at least one Load has completed.
func (r *Products) IsHydrated() bool { return r.hydrated }

// All returns a copy of the collection in stored order.
func (r *Products) All() []entity.Product {
	out := make([]entity.Product, len(r.items))
	copy(out, r.items)
	return out
}

// FindByName returns the first product whose name matches under
// normalization.
func (r *Products) FindByName(name string) (entity.Product, bool) {
	norm := entity.NormalizeName(name)
	for _, p := range r.items {
		if entity.NormalizeName(p.Name) == norm {
			return p, true
		}
	}
	return entity.Product{}, false
}

// UpsertByName records that the user ordered a product, updating the
// existing record under normalization or appending a new one. Only
// supplied fields overwrite. Returns the resulting entry.
func (r *Products) UpsertByName(ctx context.Context, name string, fields ProductFields) entity.Product {
	norm := entity.NormalizeName(name)
	for i := range r.items {
		if entity.NormalizeName(r.items[i].Name) == norm {
			if fields.LastSupplierID != nil {
				r.items[i].LastSupplierID = *fields.LastSupplierID
			}
			if fields.LastQty != nil {
				r.items[i].LastQty = *fields.LastQty
			}
			r.persist(ctx)
			return r.items[i]
		}
	}

	p := entity.Product{ID: r.ids.NewID(), Name: strings.TrimSpace(name)}
	if fields.LastSupplierID != nil {
		p.LastSupplierID = *fields.LastSupplierID
	}
	if fields.LastQty != nil {
		p.LastQty = *fields.LastQty
	}
	r.items = append(r.items, p)
	r.persist(ctx)
	return p
}

// RemoveByID deletes the product with the given id.
func (r *Products) RemoveByID(ctx context.Context, id string) bool {
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist(ctx)
			return true
		}
	}
	return false
}

// RemoveAll deletes the whole history.
func (r *Products) RemoveAll(ctx context.Context) {
	r.items = nil
	r.store.Remove(ctx, keyProducts)
}

func (r *Products) persist(ctx context.Context) {
	store.Write(ctx, r.store, keyProducts, r.items)
}

package repo

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

// Migration registry. Each entity family that participates in versioned
// storage supplies exactly one migration function: an exhaustive switch
// over the historical version range that either produces a value in the
// current shape or reports ok=false ("unrecoverable, discard").
//
// These functions are the only place old-shape assumptions live. All
// other code operates on current shapes only.
//
// Version history is documented on entity.CurrentSchemaVersion.

// legacyQty tolerates quantities stored as JSON numbers or strings, both
// of which appeared in v0/v1 data.
type legacyQty int

func (q *legacyQty) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n = json.Number(s)
	}
	v, err := n.Int64()
	if err != nil {
		// Tolerate "3.0" style values.
		f, ferr := n.Float64()
		if ferr != nil {
			return err
		}
		v = int64(f)
	}
	*q = legacyQty(v)
	return nil
}

// legacyMillis tolerates timestamps stored as RFC 3339 strings (v0/v1)
// or unix milliseconds.
func legacyMillis(raw json.RawMessage) (int64, bool) {
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return ms, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}

// profileMigration upgrades the sender profile. v0 and v1 used a "store"
// field where the current shape has "storeName".
func profileMigration(oldVersion int, old json.RawMessage) (entity.Profile, bool) {
	switch oldVersion {
	case 0, 1:
		var legacy struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Store     string `json:"store"`
			StoreName string `json:"storeName"`
		}
		if err := json.Unmarshal(old, &legacy); err != nil {
			return entity.Profile{}, false
		}
		storeName := legacy.StoreName
		if storeName == "" {
			storeName = legacy.Store
		}
		return entity.Profile{Name: legacy.Name, Email: legacy.Email, StoreName: storeName}, true
	default:
		return entity.Profile{}, false
	}
}

// suppliersMigration upgrades the supplier collection. v0 stored a plain
// name->email map with no ids; v1 matches the current shape. Generated
// ids come from the injected generator; map entries are walked in sorted
// name order so the result is deterministic for a given input.
func suppliersMigration(ids entity.IDGenerator) store.Migration[[]entity.Supplier] {
	return func(oldVersion int, old json.RawMessage) ([]entity.Supplier, bool) {
		switch oldVersion {
		case 0:
			var byName map[string]string
			if err := json.Unmarshal(old, &byName); err != nil {
				return nil, false
			}
			names := make([]string, 0, len(byName))
			for name := range byName {
				names = append(names, name)
			}
			sort.Strings(names)
			suppliers := make([]entity.Supplier, 0, len(names))
			for _, name := range names {
				suppliers = append(suppliers, entity.Supplier{
					ID:    ids.NewID(),
					Name:  name,
					Email: byName[name],
				})
			}
			return suppliers, true
		case 1:
			var suppliers []entity.Supplier
			if err := json.Unmarshal(old, &suppliers); err != nil {
				return nil, false
			}
			return suppliers, true
		default:
			return nil, false
		}
	}
}

// productsMigration upgrades the product history. v0 stored a name-keyed
// map of {supplierId, qty}; v1 matches the current shape.
func productsMigration(ids entity.IDGenerator) store.Migration[[]entity.Product] {
	return func(oldVersion int, old json.RawMessage) ([]entity.Product, bool) {
		switch oldVersion {
		case 0:
			var byName map[string]struct {
				SupplierID string    `json:"supplierId"`
				Qty        legacyQty `json:"qty"`
			}
			if err := json.Unmarshal(old, &byName); err != nil {
				return nil, false
			}
			names := make([]string, 0, len(byName))
			for name := range byName {
				names = append(names, name)
			}
			sort.Strings(names)
			products := make([]entity.Product, 0, len(names))
			for _, name := range names {
				rec := byName[name]
				products = append(products, entity.Product{
					ID:             ids.NewID(),
					Name:           name,
					LastSupplierID: rec.SupplierID,
					LastQty:        int(rec.Qty),
				})
			}
			return products, true
		case 1:
			var products []entity.Product
			if err := json.Unmarshal(old, &products); err != nil {
				return nil, false
			}
			return products, true
		default:
			return nil, false
		}
	}
}

// sessionsMigration upgrades the session collection. v0/v1 sessions
// carried RFC 3339 createdAt strings, string-or-number item quantities,
// and no status field (missing status means active).
func sessionsMigration(oldVersion int, old json.RawMessage) ([]entity.Session, bool) {
	switch oldVersion {
	case 0, 1:
		var legacy []struct {
			ID        string          `json:"id"`
			CreatedAt json.RawMessage `json:"createdAt"`
			Status    string          `json:"status"`
			Items     []struct {
				ID          string    `json:"id"`
				ProductName string    `json:"productName"`
				Quantity    legacyQty `json:"quantity"`
				SupplierID  string    `json:"supplierId"`
			} `json:"items"`
		}
		if err := json.Unmarshal(old, &legacy); err != nil {
			return nil, false
		}
		sessions := make([]entity.Session, 0, len(legacy))
		for _, ls := range legacy {
			createdAt, ok := legacyMillis(ls.CreatedAt)
			if !ok {
				return nil, false
			}
			status := entity.SessionStatus(ls.Status)
			if !status.Valid() {
				status = entity.StatusActive
			}
			items := make([]entity.SessionItem, 0, len(ls.Items))
			for _, li := range ls.Items {
				items = append(items, entity.SessionItem{
					ID:          li.ID,
					ProductName: li.ProductName,
					Quantity:    int(li.Quantity),
					SupplierID:  li.SupplierID,
				})
			}
			sessions = append(sessions, entity.Session{
				ID:        ls.ID,
				CreatedAt: createdAt,
				Items:     items,
				Status:    status,
			})
		}
		return sessions, true
	default:
		return nil, false
	}
}

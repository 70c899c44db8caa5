package dispatch

import (
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// UnassignedID is the sentinel supplier id for items whose supplier
// reference does not resolve. The unassigned bucket is excluded from
// dispatch but stays inspectable by the caller - data is never dropped
// silently.
const UnassignedID = "unassigned"

// DestinationGroup is the set of session items routed to one supplier
// for a single outbound email.
type DestinationGroup struct {
	SupplierID    string
	SupplierName  string
	SupplierEmail string
	Items         []entity.SessionItem
}

// Addressable reports whether the group may be dispatched. The
// unassigned bucket never is.
func (g DestinationGroup) Addressable() bool {
	return g.SupplierID != UnassignedID
}

// GroupByDestination partitions items by supplier, producing one group
// per destination in first-appearance order of supplierId. The output
// order is stable and deterministic for a given input order - it is
// never re-sorted, because the embedding UI and the dispatch loop both
// depend on a reproducible order.
//
// Items whose supplierId is empty or does not resolve to a known
// supplier land in the sentinel unassigned bucket. Every input item
// appears in exactly one group.
//
// Supplier metadata is resolved once per bucket from a prebuilt index,
// not per item.
func GroupByDestination(items []entity.SessionItem, suppliers []entity.Supplier) []DestinationGroup {
	index := make(map[string]entity.Supplier, len(suppliers))
	for _, s := range suppliers {
		index[s.ID] = s
	}

	var order []string
	buckets := make(map[string][]entity.SessionItem)
	for _, item := range items {
		key := item.SupplierID
		if _, known := index[key]; key == "" || !known {
			key = UnassignedID
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], item)
	}

	groups := make([]DestinationGroup, 0, len(order))
	for _, key := range order {
		g := DestinationGroup{SupplierID: key, Items: buckets[key]}
		if key == UnassignedID {
			g.SupplierName = "Unassigned"
		} else {
			s := index[key]
			g.SupplierName = s.Name
			g.SupplierEmail = s.Email
		}
		groups = append(groups, g)
	}
	return groups
}

// Package entity defines the persisted record types for the restock core.
//
// Every type here is JSON-serializable with no cyclic references. Stored
// values are wrapped in a version envelope by internal/store; the single
// global schema version lives in version.go and is bumped whenever any
// stored shape changes.
//
// Cross-entity references are non-owning: SessionItem.SupplierID points at
// a Supplier but deleting the supplier does not cascade - the item merely
// loses its grouping association.
package entity

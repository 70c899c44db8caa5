package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

var testSuppliers = []entity.Supplier{
	{ID: "sup-a", Name: "Acme", Email: "orders@acme.test"},
	{ID: "sup-b", Name: "Bolt Foods", Email: "sales@bolt.test"},
}

func TestGroupByDestination_FirstAppearanceOrder(t *testing.T) {
	items := []entity.SessionItem{
		{ID: "1", ProductName: "Flour", Quantity: 2, SupplierID: "sup-b"},
		{ID: "2", ProductName: "Yeast", Quantity: 1, SupplierID: "sup-a"},
		{ID: "3", ProductName: "Salt", Quantity: 4, SupplierID: "sup-b"},
	}

	groups := GroupByDestination(items, testSuppliers)

	require.Len(t, groups, 2)
	assert.Equal(t, "sup-b", groups[0].SupplierID, "bucket order follows first appearance, not supplier order")
	assert.Equal(t, "sup-a", groups[1].SupplierID)
	assert.Equal(t, "Bolt Foods", groups[0].SupplierName)
	assert.Equal(t, "sales@bolt.test", groups[0].SupplierEmail)
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "1", groups[0].Items[0].ID)
	assert.Equal(t, "3", groups[0].Items[1].ID)
}

func TestGroupByDestination_Total(t *testing.T) {
	// Every input item appears in exactly one group, unresolvable
	// references included.
	items := []entity.SessionItem{
		{ID: "1", SupplierID: "sup-a"},
		{ID: "2", SupplierID: ""},          // never assigned
		{ID: "3", SupplierID: "sup-gone"},  // supplier was deleted
		{ID: "4", SupplierID: "sup-a"},
	}

	groups := GroupByDestination(items, testSuppliers)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, it := range g.Items {
			seen[it.ID]++
			total++
		}
	}
	assert.Equal(t, len(items), total)
	for _, it := range items {
		assert.Equal(t, 1, seen[it.ID], "item %s must appear exactly once", it.ID)
	}
}

func TestGroupByDestination_UnassignedBucket(t *testing.T) {
	items := []entity.SessionItem{
		{ID: "1", SupplierID: ""},
		{ID: "2", SupplierID: "sup-gone"},
		{ID: "3", SupplierID: "sup-a"},
	}

	groups := GroupByDestination(items, testSuppliers)

	require.Len(t, groups, 2)
	unassigned := groups[0]
	assert.Equal(t, UnassignedID, unassigned.SupplierID)
	assert.False(t, unassigned.Addressable())
	assert.Len(t, unassigned.Items, 2, "empty and unresolvable references share the bucket")
	assert.True(t, groups[1].Addressable())
}

func TestGroupByDestination_Deterministic(t *testing.T) {
	items := []entity.SessionItem{
		{ID: "1", SupplierID: "sup-a"},
		{ID: "2", SupplierID: "sup-b"},
		{ID: "3", SupplierID: ""},
	}

	first := GroupByDestination(items, testSuppliers)
	for i := 0; i < 10; i++ {
		again := GroupByDestination(items, testSuppliers)
		assert.Equal(t, first, again, "output must be reproducible across calls")
	}
}

func TestGroupByDestination_Empty(t *testing.T) {
	assert.Empty(t, GroupByDestination(nil, testSuppliers))
	assert.Empty(t, GroupByDestination([]entity.SessionItem{}, nil))
}

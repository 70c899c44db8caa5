package repo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

func TestProfileMigration_RenamesStoreField(t *testing.T) {
	old := json.RawMessage(`{"name":"Ana","email":"ana@shop.test","store":"Main Street Grocers"}`)

	for _, version := range []int{0, 1} {
		p, ok := profileMigration(version, old)
		require.True(t, ok, "version %d should migrate", version)
		assert.Equal(t, "Ana", p.Name)
		assert.Equal(t, "ana@shop.test", p.Email)
		assert.Equal(t, "Main Street Grocers", p.StoreName)
	}
}

func TestProfileMigration_UnknownVersion(t *testing.T) {
	_, ok := profileMigration(7, json.RawMessage(`{}`))
	assert.False(t, ok, "unknown versions must be discarded")
}

func TestSuppliersMigration_V0MapToList(t *testing.T) {
	migrate := suppliersMigration(entity.NewFixedGenerator("sup-1", "sup-2"))

	got, ok := migrate(0, json.RawMessage(`{"Zesty Farms":"z@farms.test","Acme":"orders@acme.test"}`))
	require.True(t, ok)
	require.Len(t, got, 2)

	// Sorted name order: deterministic regardless of map iteration.
	assert.Equal(t, entity.Supplier{ID: "sup-1", Name: "Acme", Email: "orders@acme.test"}, got[0])
	assert.Equal(t, entity.Supplier{ID: "sup-2", Name: "Zesty Farms", Email: "z@farms.test"}, got[1])
}

func TestSuppliersMigration_V1Passthrough(t *testing.T) {
	migrate := suppliersMigration(entity.NewFixedGenerator())

	got, ok := migrate(1, json.RawMessage(`[{"id":"s1","name":"Acme","email":"a@b.test"}]`))
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestSuppliersMigration_Malformed(t *testing.T) {
	migrate := suppliersMigration(entity.NewFixedGenerator())
	_, ok := migrate(0, json.RawMessage(`[1,2,3]`))
	assert.False(t, ok)
}

func TestProductsMigration_V0MapToList(t *testing.T) {
	migrate := productsMigration(entity.NewFixedGenerator("p-1"))

	got, ok := migrate(0, json.RawMessage(`{"Flour":{"supplierId":"sup-1","qty":"12"}}`))
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, entity.Product{ID: "p-1", Name: "Flour", LastSupplierID: "sup-1", LastQty: 12}, got[0])
}

func TestSessionsMigration_LegacyShapes(t *testing.T) {
	old := json.RawMessage(`[
		{
			"id": "sess-1",
			"createdAt": "2023-06-01T10:30:00Z",
			"items": [
				{"id":"i1","productName":"Flour","quantity":"3","supplierId":"sup-1"},
				{"id":"i2","productName":"Yeast","quantity":5}
			]
		}
	]`)

	got, ok := sessionsMigration(1, old)
	require.True(t, ok)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, entity.StatusActive, s.Status, "missing status defaults to active")
	assert.EqualValues(t, 1685615400000, s.CreatedAt, "RFC 3339 converts to unix ms")
	require.Len(t, s.Items, 2)
	assert.Equal(t, 3, s.Items[0].Quantity, "string quantity converts")
	assert.Equal(t, 5, s.Items[1].Quantity)
}

func TestSessionsMigration_NumericCreatedAtPassthrough(t *testing.T) {
	got, ok := sessionsMigration(1, json.RawMessage(`[{"id":"s","createdAt":1700000000000,"status":"completed","items":[]}]`))
	require.True(t, ok)
	assert.EqualValues(t, 1700000000000, got[0].CreatedAt)
	assert.Equal(t, entity.StatusCompleted, got[0].Status)
}

func TestSessionsMigration_UnparseableTimestamp(t *testing.T) {
	_, ok := sessionsMigration(0, json.RawMessage(`[{"id":"s","createdAt":"yesterday","items":[]}]`))
	assert.False(t, ok)
}

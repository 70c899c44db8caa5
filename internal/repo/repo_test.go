package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/testutil"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestSuppliers_UpsertByName_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSuppliers(s, entity.NewFixedGenerator("sup-1", "unexpected"), nil)
	r.Load(ctx)

	first := r.UpsertByName(ctx, "Acme", SupplierFields{Email: str("orders@acme.test")})
	second := r.UpsertByName(ctx, "  acme  ", SupplierFields{})

	require.Len(t, r.All(), 1, "case/whitespace variants must not create a second record")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "orders@acme.test", second.Email, "unsupplied field preserves the stored value")
	assert.Equal(t, "Acme", second.Name, "original trimmed spelling is kept")
}

func TestSuppliers_UpsertByName_SuppliedFieldOverrides(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSuppliers(s, entity.NewFixedGenerator("sup-1"), nil)
	r.Load(ctx)

	r.UpsertByName(ctx, "Acme", SupplierFields{Email: str("old@acme.test")})
	got := r.UpsertByName(ctx, "ACME", SupplierFields{Email: str("new@acme.test")})

	assert.Equal(t, "new@acme.test", got.Email)
	require.Len(t, r.All(), 1)
}

func TestSuppliers_FindByName_Normalized(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSuppliers(s, entity.NewFixedGenerator("sup-1"), nil)
	r.Load(ctx)
	r.UpsertByName(ctx, "Zesty Farms", SupplierFields{})

	got, ok := r.FindByName("  ZESTY farms ")
	require.True(t, ok)
	assert.Equal(t, "Zesty Farms", got.Name)

	_, ok = r.FindByName("Zesty")
	assert.False(t, ok)
}

func TestSuppliers_PersistAcrossReload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r1 := NewSuppliers(s, entity.NewFixedGenerator("sup-1"), nil)
	r1.Load(ctx)
	r1.UpsertByName(ctx, "Acme", SupplierFields{Email: str("a@b.test")})

	r2 := NewSuppliers(s, entity.NewFixedGenerator(), nil)
	r2.Load(ctx)
	require.Len(t, r2.All(), 1)
	assert.Equal(t, "Acme", r2.All()[0].Name)
}

func TestSuppliers_RemoveByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSuppliers(s, entity.NewFixedGenerator("sup-1", "sup-2"), nil)
	r.Load(ctx)
	r.UpsertByName(ctx, "Acme", SupplierFields{})
	r.UpsertByName(ctx, "Zesty", SupplierFields{})

	assert.True(t, r.RemoveByID(ctx, "sup-1"))
	assert.False(t, r.RemoveByID(ctx, "sup-1"), "second remove reports not found")
	require.Len(t, r.All(), 1)
	assert.Equal(t, "Zesty", r.All()[0].Name)
}

func TestProducts_UpsertByName_RecallFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewProducts(s, entity.NewFixedGenerator("p-1"), nil)
	r.Load(ctx)

	r.UpsertByName(ctx, "Flour", ProductFields{LastSupplierID: str("sup-1"), LastQty: num(3)})
	got := r.UpsertByName(ctx, " FLOUR ", ProductFields{LastQty: num(5)})

	require.Len(t, r.All(), 1)
	assert.Equal(t, "sup-1", got.LastSupplierID, "unsupplied field preserved")
	assert.Equal(t, 5, got.LastQty, "supplied field overrides")
}

func TestHydration_IdempotentAndFlagged(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSuppliers(s, entity.NewFixedGenerator("sup-1"), nil)

	assert.False(t, r.IsHydrated())

	// Empty store: the flag still reflects a completed load.
	r.Load(ctx)
	assert.True(t, r.IsHydrated())
	assert.Empty(t, r.All())

	r.UpsertByName(ctx, "Acme", SupplierFields{})

	// A second load (e.g. after reset) is safe and rereads the store.
	r.Load(ctx)
	assert.True(t, r.IsHydrated())
	require.Len(t, r.All(), 1)
}

func TestSessions_CreateAndItems(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSessions(s, entity.NewFixedGenerator("sess-1", "i-1", "i-2"), nil)
	r.Load(ctx)

	sess := r.Create(ctx)
	assert.Equal(t, entity.StatusActive, sess.Status)
	assert.NotZero(t, sess.CreatedAt)

	_, err := r.AddItem(ctx, sess.ID, "Flour", 3, "sup-1")
	require.NoError(t, err)
	item2, err := r.AddItem(ctx, sess.ID, "Yeast", 1, "")
	require.NoError(t, err)

	err = r.UpdateItem(ctx, sess.ID, item2.ID, func(it entity.SessionItem) entity.SessionItem {
		it.Quantity = 4
		it.ID = "forged" // must be ignored
		return it
	})
	require.NoError(t, err)

	got, ok := r.Get(sess.ID)
	require.True(t, ok)
	require.Len(t, got.Items, 2)
	assert.Equal(t, item2.ID, got.Items[1].ID)
	assert.Equal(t, 4, got.Items[1].Quantity)

	require.NoError(t, r.RemoveItem(ctx, sess.ID, item2.ID))
	got, _ = r.Get(sess.ID)
	require.Len(t, got.Items, 1)

	assert.ErrorIs(t, r.RemoveItem(ctx, sess.ID, "missing"), ErrItemNotFound)
	_, err = r.AddItem(ctx, "missing", "x", 1, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_StatusForwardOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSessions(s, entity.NewFixedGenerator("sess-1"), nil)
	r.Load(ctx)
	sess := r.Create(ctx)

	require.NoError(t, r.Advance(ctx, sess.ID, entity.StatusPendingEmails))
	assert.ErrorIs(t, r.Advance(ctx, sess.ID, entity.StatusActive), ErrStatusRegression)

	require.NoError(t, r.Advance(ctx, sess.ID, entity.StatusCompleted))
	assert.ErrorIs(t, r.Advance(ctx, sess.ID, entity.StatusPendingEmails), ErrStatusRegression)

	// Advancing to the current status is a permitted no-op.
	require.NoError(t, r.Advance(ctx, sess.ID, entity.StatusCompleted))

	got, _ := r.Get(sess.ID)
	assert.Equal(t, entity.StatusCompleted, got.Status)
}

func TestSessions_CreatedAtFromInjectedClock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := testutil.NewDeterministicClock(start)
	r := NewSessions(s, entity.NewFixedGenerator("sess-1", "sess-2"), nil).WithNow(clock.Now)

	a := r.Create(ctx)
	b := r.Create(ctx)

	assert.Equal(t, start.UnixMilli(), a.CreatedAt)
	assert.Equal(t, start.UnixMilli()+1, b.CreatedAt, "clock steps one millisecond per call")
}

func TestSessions_DeleteFromAnyState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSessions(s, entity.NewFixedGenerator("sess-1", "sess-2"), nil)
	r.Load(ctx)

	a := r.Create(ctx)
	b := r.Create(ctx)
	require.NoError(t, r.Advance(ctx, b.ID, entity.StatusCompleted))

	require.NoError(t, r.Delete(ctx, a.ID))
	require.NoError(t, r.Delete(ctx, b.ID), "deletion is permitted from any state")
	assert.Empty(t, r.All())
	assert.ErrorIs(t, r.Delete(ctx, a.ID), ErrSessionNotFound)
}

func TestProfile_SetGetClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewProfile(s, nil)
	r.Load(ctx)

	_, ok := r.Get()
	assert.False(t, ok)

	r.Set(ctx, entity.Profile{Name: "Ana", Email: "ana@shop.test", StoreName: "Main Street Grocers"})
	got, ok := r.Get()
	require.True(t, ok)
	assert.Equal(t, "Main Street Grocers", got.StoreName)

	// Survives reload.
	r2 := NewProfile(s, nil)
	r2.Load(ctx)
	got, ok = r2.Get()
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)

	r2.Clear(ctx)
	r3 := NewProfile(s, nil)
	r3.Load(ctx)
	_, ok = r3.Get()
	assert.False(t, ok)
}

func TestCompany_SingletonLink(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewCompany(s, nil)
	r.Load(ctx)

	_, ok := r.Get()
	assert.False(t, ok, "absence means standalone mode")

	r.Set(ctx, entity.CompanyLink{Code: "C-123", OrgID: "org-1", StoreName: "Main Street Grocers", JoinedAt: 1700000000000})

	r2 := NewCompany(s, nil)
	r2.Load(ctx)
	link, ok := r2.Get()
	require.True(t, ok)
	assert.Equal(t, "C-123", link.Code)
}

func TestSnapshots_ReplaceOnPut(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := NewSnapshots(s, nil)
	r.Load(ctx)

	r.Put(ctx, entity.Snapshot{StoreName: "Downtown", PublishedAt: 1})
	r.Put(ctx, entity.Snapshot{StoreName: "Downtown", PublishedAt: 2})

	snap, ok := r.Get("Downtown")
	require.True(t, ok)
	assert.EqualValues(t, 2, snap.PublishedAt, "refetch replaces the entry")

	_, ok = r.Get("Uptown")
	assert.False(t, ok)

	r2 := NewSnapshots(s, nil)
	r2.Load(ctx)
	snap, ok = r2.Get("Downtown")
	require.True(t, ok)
	assert.EqualValues(t, 2, snap.PublishedAt)
}

package fixtures_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
	"storefront/internal/fixtures"
	"storefront/internal/infrastructure/storage/memory"
)

func TestDemo_PasswordHashes(t *testing.T) {
	ds, err := fixtures.Demo(bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, ds.Users)

	for _, u := range ds.Users {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(fixtures.DemoPassword)), u.Username)
	}
}

func TestDemo_PaymentCoversOrderProducts(t *testing.T) {
	ds, err := fixtures.Demo(bcrypt.MinCost)
	require.NoError(t, err)

	// order 1 holds products 1 and 3 and is paid in full by payment 1
	total := ds.Products[0].Price.Add(ds.Products[2].Price)
	assert.True(t, total.Equal(ds.Payments[0].Amount), "%s != %s", total, ds.Payments[0].Amount)
}

func TestLoadMemoryAndApplyLinks(t *testing.T) {
	ds, err := fixtures.Demo(bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewStore()
	fixtures.LoadMemory(store, ds)
	reg := relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth)

	created, err := fixtures.ApplyLinks(context.Background(), reg, ds.Links, fixtures.Remap{})
	require.NoError(t, err)
	assert.Len(t, created, len(ds.Links))

	for _, svc := range reg.Services() {
		orphans, err := svc.Orphans(context.Background())
		require.NoError(t, err)
		assert.Empty(t, orphans, svc.Relation().Name)
	}

	list, err := reg.OrderPayments.List(context.Background())
	require.NoError(t, err)
	assert.False(t, list.Empty)
	assert.Len(t, list.Items, 1)
}

func TestApplyLinks_Remap(t *testing.T) {
	store := memory.NewStore()
	store.Carts.Put(100, aggregate.Cart{ID: 100})
	store.Items.Put(200, aggregate.Item{ID: 200})
	reg := relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth)

	remap := fixtures.Remap{}
	remap.Set(aggregate.KindCart, 1, 100)
	remap.Set(aggregate.KindItem, 1, 200)

	created, err := fixtures.ApplyLinks(context.Background(), reg,
		[]fixtures.Link{{Relation: relations.CartItem.Name, Left: 1, Right: 1}}, remap)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(100), created[0].LeftID)
	assert.Equal(t, int64(200), created[0].RightID)
}

func TestApplyLinks_StopsOnMissingSide(t *testing.T) {
	store := memory.NewStore()
	store.Carts.Put(1, aggregate.Cart{ID: 1})
	reg := relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth)

	created, err := fixtures.ApplyLinks(context.Background(), reg,
		[]fixtures.Link{{Relation: relations.CartItem.Name, Left: 1, Right: 9}}, nil)
	require.Error(t, err)
	assert.True(t, association.IsRightNotFound(err))
	assert.Empty(t, created)
}

func TestRemap_Resolve(t *testing.T) {
	remap := fixtures.Remap{}
	assert.Equal(t, int64(5), remap.Resolve(aggregate.KindOrder, 5))

	remap.Set(aggregate.KindOrder, 5, 42)
	assert.Equal(t, int64(42), remap.Resolve(aggregate.KindOrder, 5))
	assert.Equal(t, int64(5), remap.Resolve(aggregate.KindPayment, 5))
}

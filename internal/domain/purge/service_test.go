package purge_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/purge"
	"storefront/internal/domain/relations"
	"storefront/internal/infrastructure/storage/memory"
)

type env struct {
	store  *memory.Store
	reg    *relations.Registry
	ledger *ledger.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	store := memory.NewStore()
	e := env{
		store:  store,
		reg:    relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth),
		ledger: ledger.NewService(store.Ledger, store.Tx),
	}

	ctx := context.Background()
	store.Orders.Put(1, aggregate.Order{ID: 1})
	store.Orders.Put(2, aggregate.Order{ID: 2})
	store.Items.Put(10, aggregate.Item{ID: 10})
	store.Products.Put(20, aggregate.Product{ID: 20})
	store.Payments.Put(30, aggregate.Payment{ID: 30})
	store.Carts.Put(40, aggregate.Cart{ID: 40})

	for _, step := range []func() error{
		func() error { _, err := e.reg.OrderItems.Create(ctx, 1, 10); return err },
		func() error { _, err := e.reg.OrderItems.Create(ctx, 2, 10); return err },
		func() error { _, err := e.reg.OrderProducts.Create(ctx, 1, 20); return err },
		func() error { _, err := e.reg.OrderPayments.Create(ctx, 1, 30); return err },
		func() error { _, err := e.reg.CartItems.Create(ctx, 40, 10); return err },
	} {
		require.NoError(t, step())
	}
	return e
}

func (e env) service(policy purge.CascadePolicy) *purge.Service {
	return purge.NewService(e.store.Aggregates(), e.reg.Services(), e.ledger, e.store.Tx, policy)
}

func count(t *testing.T, svc association.Service) int {
	t.Helper()
	res, err := svc.List(context.Background())
	require.NoError(t, err)
	return len(res.Items)
}

func TestPurge_DetachesEveryReferencingRelation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	report, err := e.service(nil).Purge(ctx, aggregate.KindOrder, 1)
	require.NoError(t, err)

	assert.Equal(t, aggregate.KindOrder, report.Kind)
	assert.Equal(t, []purge.Detached{
		{Relation: "order_item", Action: "detach", Removed: 1},
		{Relation: "order_product", Action: "detach", Removed: 1},
		{Relation: "order_payment", Action: "detach", Removed: 1},
	}, report.Relations)
	assert.Equal(t, "Order", report.Tombstone.EntityType)

	ok, err := e.store.Orders.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, count(t, e.reg.OrderItems), "order 2 keeps its link")
	assert.Zero(t, count(t, e.reg.OrderPayments))
	assert.Equal(t, 1, count(t, e.reg.CartItems))

	entry, found, err := e.ledger.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Order", entry.EntityType)
}

func TestPurge_RightSide(t *testing.T) {
	e := newEnv(t)

	report, err := e.service(purge.DetachAll).Purge(context.Background(), aggregate.KindItem, 10)
	require.NoError(t, err)

	removed := map[string]int64{}
	for _, d := range report.Relations {
		removed[d.Relation] = d.Removed
	}
	assert.Equal(t, map[string]int64{
		"cart_item":      1,
		"item_inventory": 0,
		"order_item":     2,
	}, removed)
	assert.Zero(t, count(t, e.reg.OrderItems))
	assert.Zero(t, count(t, e.reg.CartItems))
}

func TestPurge_KeepLeavesOrphans(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	report, err := e.service(purge.KeepRelations("order_payment")).Purge(ctx, aggregate.KindOrder, 1)
	require.NoError(t, err)
	assert.Contains(t, report.Relations, purge.Detached{Relation: "order_payment", Action: "keep"})

	orphans, err := e.reg.OrderPayments.Orphans(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.True(t, orphans[0].LeftMissing)
	assert.False(t, orphans[0].RightMissing)
}

func TestPurge_Failures(t *testing.T) {
	tests := []struct {
		name  string
		kind  aggregate.Kind
		id    id.ID
		check func(error) bool
	}{
		{"missing aggregate", aggregate.KindOrder, 99, apperror.IsNotFound},
		{"non-positive id", aggregate.KindOrder, 0, apperror.IsInvalidArgument},
		{"unknown kind", aggregate.Kind("Coupon"), 1, apperror.IsInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, err := e.service(nil).Purge(context.Background(), tt.kind, tt.id)
			assert.True(t, tt.check(err), "got %v", err)

			entries, err := e.ledger.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestPurge_TombstoneConflictRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.ledger.Record(ctx, 1, "User")
	require.NoError(t, err)

	_, err = e.service(nil).Purge(ctx, aggregate.KindOrder, 1)
	require.True(t, apperror.IsDuplicate(err), "got %v", err)

	ok, err := e.store.Orders.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok, "aggregate restored")
	assert.Equal(t, 2, count(t, e.reg.OrderItems), "links restored")
}

// lockingStore records the calls the purge path makes against one store.
type lockingStore struct {
	aggregate.Store
	calls []string
}

func (s *lockingStore) LockForUpdate(ctx context.Context, key id.ID) (bool, error) {
	s.calls = append(s.calls, fmt.Sprintf("lock %d", key))
	return s.Store.LockForUpdate(ctx, key)
}

func (s *lockingStore) Delete(ctx context.Context, key id.ID) error {
	s.calls = append(s.calls, fmt.Sprintf("delete %d", key))
	return s.Store.Delete(ctx, key)
}

func TestPurge_LocksAggregateBeforeDetaching(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	stores := e.store.Aggregates()
	orders := &lockingStore{Store: stores[aggregate.KindOrder]}
	stores[aggregate.KindOrder] = orders
	svc := purge.NewService(stores, e.reg.Services(), e.ledger, e.store.Tx, nil)

	_, err := svc.Purge(ctx, aggregate.KindOrder, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"lock 1", "delete 1"}, orders.calls)

	_, err = svc.Purge(ctx, aggregate.KindOrder, 1)
	require.True(t, apperror.IsNotFound(err))
	assert.Equal(t, []string{"lock 1", "delete 1", "lock 1"}, orders.calls, "missing row is never deleted")
}

func TestParseKeepList(t *testing.T) {
	names, err := purge.ParseKeepList(" order_payment, ,cart_item", relations.All())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_payment", "cart_item"}, names)

	names, err = purge.ParseKeepList("", relations.All())
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = purge.ParseKeepList("order_coupon", relations.All())
	assert.Error(t, err)
}

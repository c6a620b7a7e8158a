package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core/apperror"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/relations"
)

func TestTxManager_RollbackRestoresEveryStore(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.AssociationRepo(relations.CartItem)

	s.Carts.Put(1, aggregate.Cart{ID: 1})
	_, err := repo.Insert(ctx, 1, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Carts.Delete(ctx, 1))
		_, err := repo.DeleteByLeft(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, s.Ledger.Insert(ctx, ledger.Entry{DeletedID: 1, EntityType: "Cart", RecordedAt: time.Now()}))
		_, err = repo.Insert(ctx, 2, 2)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	ok, err := s.Carts.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)

	ok, err = s.Ledger.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	next, err := repo.Insert(ctx, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID, "id sequence rolled back too")
}

func TestTxManager_PanicRestoresAndRepanics(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.Orders.Put(1, aggregate.Order{ID: 1})

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			require.NoError(t, s.Orders.Delete(ctx, 1))
			s.Orders.Put(2, aggregate.Order{ID: 2})
			panic("boom")
		})
	})
	assert.Equal(t, []int64{1}, s.Orders.IDs())

	// the lock was released on the way out
	err := s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		s.Orders.Put(3, aggregate.Order{ID: 3})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, s.Orders.IDs())
}

func TestTxManager_NestedCallsJoin(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		s.Items.Put(5, aggregate.Item{ID: 5})
		return s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			s.Items.Put(6, aggregate.Item{ID: 6})
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, s.Items.IDs())

	err = s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		s.Items.Put(7, aggregate.Item{ID: 7})
		return s.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
			return errors.New("inner failed")
		})
	})
	require.Error(t, err)
	assert.Equal(t, []int64{5, 6}, s.Items.IDs())
}

func TestAggregateStore(t *testing.T) {
	s := NewAggregateStore[aggregate.Order](aggregate.KindOrder)
	ctx := context.Background()

	_, err := s.GetByID(ctx, 1)
	require.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "Order", appErr.Detail("entity"))

	s.Put(1, aggregate.Order{ID: 1, Status: "new"})
	got, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Status)

	require.NoError(t, s.Delete(ctx, 1))
	assert.True(t, apperror.IsNotFound(s.Delete(ctx, 1)))
}

func TestAssociationRepo(t *testing.T) {
	r := NewAssociationRepo("cart_item association")
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		rec, err := r.Insert(ctx, i, i*10)
		require.NoError(t, err)
		assert.Equal(t, i, rec.ID)
	}

	rec, err := r.GetForUpdate(ctx, 2)
	require.NoError(t, err)
	rec.RightID = 99
	require.NoError(t, r.Update(ctx, rec))

	got, err := r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got.RightID)

	rec.ID = 42
	assert.True(t, apperror.IsNotFound(r.Update(ctx, rec)))
	assert.True(t, apperror.IsNotFound(r.Delete(ctx, 42)))

	records, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, int64(i+1), rec.ID, "ordered by id")
	}
}

func TestLedgerRepo(t *testing.T) {
	r := NewLedgerRepo()
	ctx := context.Background()
	entry := ledger.Entry{DeletedID: 3, EntityType: "Order", RecordedAt: time.Now()}

	require.NoError(t, r.Insert(ctx, entry))
	assert.True(t, apperror.IsDuplicate(r.Insert(ctx, entry)))

	updated, err := r.UpdateEntityType(ctx, 3, "Payment")
	require.NoError(t, err)
	assert.Equal(t, "Payment", updated.EntityType)

	_, err = r.UpdateEntityType(ctx, 4, "Payment")
	assert.True(t, ledger.IsEntryNotFound(err))

	require.NoError(t, r.Delete(ctx, 3))
	_, err = r.Get(ctx, 3)
	assert.True(t, ledger.IsEntryNotFound(err))
}

func TestStore_AssociationRepoIsStable(t *testing.T) {
	s := NewStore()
	a := s.AssociationRepo(relations.OrderPayment)
	b := s.AssociationRepo(relations.OrderPayment)
	c := s.AssociationRepo(relations.OrderItem)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Len(t, s.Aggregates(), len(aggregate.Kinds()))
}

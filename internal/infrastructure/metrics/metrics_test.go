package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/relations"
	"storefront/internal/infrastructure/storage/memory"
	"storefront/internal/infrastructure/storage/postgres"
)

func TestObserveAssociations(t *testing.T) {
	store := memory.NewStore()
	reg := relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth)
	m := New()
	m.ObserveAssociations(reg.Services())

	ctx := context.Background()
	store.Carts.Put(1, aggregate.Cart{ID: 1})
	store.Items.Put(2, aggregate.Item{ID: 2})

	rec, err := reg.CartItems.Create(ctx, 1, 2)
	require.NoError(t, err)
	_, err = reg.CartItems.Create(ctx, 1, 99)
	require.Error(t, err)
	require.NoError(t, reg.CartItems.Delete(ctx, rec.ID))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssociationOps("cart_item", "create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AssociationOps("cart_item", "update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssociationOps("cart_item", "delete")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AssociationOps("order_item", "create")))
}

func TestObserveAssociations_CountsDetachedRecords(t *testing.T) {
	store := memory.NewStore()
	reg := relations.NewRegistry(store.Lookups(), store.AssociationRepo, store.Tx, association.RevalidateBoth)
	m := New()
	m.ObserveAssociations(reg.Services())

	ctx := context.Background()
	store.Orders.Put(1, aggregate.Order{ID: 1})
	for _, key := range []int64{10, 11, 12} {
		store.Items.Put(key, aggregate.Item{ID: key})
		_, err := reg.OrderItems.Create(ctx, 1, key)
		require.NoError(t, err)
	}

	n, err := reg.OrderItems.DetachLeft(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.AssociationOps("order_item", "delete")))
}

func TestObserveHTTP(t *testing.T) {
	m := New()

	m.ObserveHTTP(http.MethodGet, "/api/v1/deleted-ids/:id", http.StatusNotFound, 5*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/api/v1/deleted-ids/:id", http.StatusNotFound, 7*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/deleted-ids/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestHandlerExposesPoolGauges(t *testing.T) {
	m := New()
	m.ObservePool(func() postgres.PoolStats {
		return postgres.PoolStats{TotalConns: 4, AcquiredConns: 1, IdleConns: 3, MaxConns: 25}
	})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "storefront_db_pool_max_conns 25")
	assert.Contains(t, string(body), "storefront_db_pool_idle_conns 3")
}

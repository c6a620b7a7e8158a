// Package memory provides in-process implementations of every storage port.
// It backs unit tests and the STORAGE=memory server mode.
package memory

import (
	"context"
	"sync"

	"storefront/internal/core/tx"
)

var _ tx.Manager = (*TxManager)(nil)

// Snapshotter is implemented by every memory store so a failed transaction
// can restore the state it started from.
type Snapshotter interface {
	snapshot() any
	restore(state any)
}

// TxManager serializes transactions over a set of memory stores.
// A transaction that returns an error or panics restores every store's
// snapshot.
type TxManager struct {
	mu     sync.Mutex
	stores []Snapshotter
}

// NewTxManager creates a transaction manager covering stores.
func NewTxManager(stores ...Snapshotter) *TxManager {
	return &TxManager{stores: stores}
}

// Track adds stores created after the manager.
func (m *TxManager) Track(stores ...Snapshotter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = append(m.stores, stores...)
}

type txKey struct{}

// RunInTransaction implements tx.Manager. Nested calls join the outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, ok := ctx.Value(txKey{}).(*TxManager); ok && owner == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make([]any, len(m.stores))
	for i, s := range m.stores {
		snapshots[i] = s.snapshot()
	}
	rollback := func() {
		for i, s := range m.stores {
			s.restore(snapshots[i])
		}
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, m)); err != nil {
		rollback()
		return err
	}
	return nil
}

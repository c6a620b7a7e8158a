// Package tx defines the transaction boundary used by domain services.
// Every association and ledger operation runs inside exactly one
// RunInTransaction call; the storage adapters decide what that means.
package tx

import (
	"context"
)

// Manager runs a unit of work inside a transaction.
//
// Implementations live in infrastructure/storage (postgres, memory).
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// A non-nil error from fn rolls the transaction back, nil commits it.
	// Nested calls join the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transactions for list/get paths.
type ReadOnlyManager interface {
	Manager

	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Func adapts a plain function to Manager. Useful in tests.
type Func func(ctx context.Context, fn func(ctx context.Context) error) error

// RunInTransaction implements Manager.
func (f Func) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// ReadOnly runs fn read-only when m supports it, otherwise as a regular transaction.
func ReadOnly(ctx context.Context, m Manager, fn func(ctx context.Context) error) error {
	if ro, ok := m.(ReadOnlyManager); ok {
		return ro.ReadOnly(ctx, fn)
	}
	return m.RunInTransaction(ctx, fn)
}

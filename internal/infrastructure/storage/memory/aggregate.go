package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
)

// AggregateStore holds aggregates of one kind keyed by id.
type AggregateStore[T any] struct {
	mu    sync.RWMutex
	kind  aggregate.Kind
	items map[id.ID]T
}

var (
	_ aggregate.Lookup[aggregate.Cart] = (*AggregateStore[aggregate.Cart])(nil)
	_ aggregate.Store                  = (*AggregateStore[aggregate.Cart])(nil)
)

// NewAggregateStore creates an empty store for kind.
func NewAggregateStore[T any](kind aggregate.Kind) *AggregateStore[T] {
	return &AggregateStore[T]{
		kind:  kind,
		items: make(map[id.ID]T),
	}
}

// Put inserts or replaces an aggregate.
func (s *AggregateStore[T]) Put(key id.ID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = v
}

func (s *AggregateStore[T]) GetByID(ctx context.Context, key id.ID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(string(s.kind), key)
	}
	return v, nil
}

func (s *AggregateStore[T]) Exists(ctx context.Context, key id.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[key]
	return ok, nil
}

// GetForShare is GetByID; TxManager already serializes writers.
func (s *AggregateStore[T]) GetForShare(ctx context.Context, key id.ID) (T, error) {
	return s.GetByID(ctx, key)
}

// LockForUpdate is Exists for the same reason.
func (s *AggregateStore[T]) LockForUpdate(ctx context.Context, key id.ID) (bool, error) {
	return s.Exists(ctx, key)
}

func (s *AggregateStore[T]) Delete(ctx context.Context, key id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return apperror.NewNotFound(string(s.kind), key)
	}
	delete(s.items, key)
	return nil
}

// IDs returns the stored ids in ascending order.
func (s *AggregateStore[T]) IDs() []id.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.items))
}

func (s *AggregateStore[T]) snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.items)
}

func (s *AggregateStore[T]) restore(state any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = state.(map[id.ID]T)
}

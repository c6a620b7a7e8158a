package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/ledger"
)

var _ ledger.Repository = (*LedgerRepo)(nil)

// LedgerRepo is the in-memory deletion ledger.
type LedgerRepo struct {
	mu      sync.RWMutex
	entries map[id.ID]ledger.Entry
}

// NewLedgerRepo creates an empty ledger.
func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{entries: make(map[id.ID]ledger.Entry)}
}

func (r *LedgerRepo) Insert(ctx context.Context, e ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.DeletedID]; ok {
		return apperror.NewDuplicate(ledger.EntityName, "deletedId", e.DeletedID)
	}
	r.entries[e.DeletedID] = e
	return nil
}

func (r *LedgerRepo) Get(ctx context.Context, deletedID id.ID) (ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[deletedID]
	if !ok {
		return ledger.Entry{}, ledger.NewEntryNotFound(deletedID)
	}
	return e, nil
}

func (r *LedgerRepo) Exists(ctx context.Context, deletedID id.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[deletedID]
	return ok, nil
}

func (r *LedgerRepo) List(ctx context.Context) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ledger.Entry, 0, len(r.entries))
	for _, key := range slices.Sorted(maps.Keys(r.entries)) {
		out = append(out, r.entries[key])
	}
	return out, nil
}

func (r *LedgerRepo) UpdateEntityType(ctx context.Context, deletedID id.ID, entityType string) (ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[deletedID]
	if !ok {
		return ledger.Entry{}, ledger.NewEntryNotFound(deletedID)
	}
	e.EntityType = entityType
	r.entries[deletedID] = e
	return e, nil
}

func (r *LedgerRepo) Delete(ctx context.Context, deletedID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[deletedID]; !ok {
		return ledger.NewEntryNotFound(deletedID)
	}
	delete(r.entries, deletedID)
	return nil
}

func (r *LedgerRepo) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

func (r *LedgerRepo) restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = state.(map[id.ID]ledger.Entry)
}

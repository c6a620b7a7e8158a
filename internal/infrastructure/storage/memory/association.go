package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/association"
)

var _ association.Repository = (*AssociationRepo)(nil)

// AssociationRepo stores the records of one relation.
type AssociationRepo struct {
	mu      sync.RWMutex
	name    string
	nextID  id.ID
	records map[id.ID]association.Record
}

type associationState struct {
	nextID  id.ID
	records map[id.ID]association.Record
}

// NewAssociationRepo creates an empty repository; name is used in errors.
func NewAssociationRepo(name string) *AssociationRepo {
	return &AssociationRepo{
		name:    name,
		records: make(map[id.ID]association.Record),
	}
}

func (r *AssociationRepo) Insert(ctx context.Context, leftID, rightID id.ID) (association.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec := association.Record{ID: r.nextID, LeftID: leftID, RightID: rightID}
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *AssociationRepo) GetByID(ctx context.Context, recordID id.ID) (association.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[recordID]
	if !ok {
		return association.Record{}, apperror.NewNotFound(r.name, recordID)
	}
	return rec, nil
}

// GetForUpdate needs no row lock: TxManager already serializes transactions.
func (r *AssociationRepo) GetForUpdate(ctx context.Context, recordID id.ID) (association.Record, error) {
	return r.GetByID(ctx, recordID)
}

// List returns records ordered by id.
func (r *AssociationRepo) List(ctx context.Context) ([]association.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]association.Record, 0, len(r.records))
	for _, key := range slices.Sorted(maps.Keys(r.records)) {
		out = append(out, r.records[key])
	}
	return out, nil
}

func (r *AssociationRepo) Update(ctx context.Context, rec association.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; !ok {
		return apperror.NewNotFound(r.name, rec.ID)
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *AssociationRepo) Delete(ctx context.Context, recordID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[recordID]; !ok {
		return apperror.NewNotFound(r.name, recordID)
	}
	delete(r.records, recordID)
	return nil
}

func (r *AssociationRepo) DeleteByLeft(ctx context.Context, leftID id.ID) ([]association.Record, error) {
	return r.deleteWhere(func(rec association.Record) bool { return rec.LeftID == leftID }), nil
}

func (r *AssociationRepo) DeleteByRight(ctx context.Context, rightID id.ID) ([]association.Record, error) {
	return r.deleteWhere(func(rec association.Record) bool { return rec.RightID == rightID }), nil
}

// deleteWhere returns the removed records ordered by id.
func (r *AssociationRepo) deleteWhere(match func(association.Record) bool) []association.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []association.Record
	for _, key := range slices.Sorted(maps.Keys(r.records)) {
		if rec := r.records[key]; match(rec) {
			delete(r.records, key)
			removed = append(removed, rec)
		}
	}
	return removed
}

func (r *AssociationRepo) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return associationState{nextID: r.nextID, records: maps.Clone(r.records)}
}

func (r *AssociationRepo) restore(state any) {
	s := state.(associationState)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = s.nextID
	r.records = s.records
}

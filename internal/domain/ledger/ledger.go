// Package ledger records tombstones for deleted aggregates.
//
// An entry is keyed by the removed aggregate's id; only its entity type may
// be corrected afterwards. Entries have no link to live aggregates.
package ledger

import (
	"context"
	"time"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
)

// EntityName is used in error details.
const EntityName = "deleted id"

// Entry is one tombstone.
type Entry struct {
	DeletedID  id.ID     `db:"deleted_id" json:"deletedId"`
	EntityType string    `db:"entity_type" json:"entityType"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

// Repository persists ledger entries.
type Repository interface {
	// Insert returns apperror Duplicate when the id is already recorded.
	Insert(ctx context.Context, e Entry) error

	// Get returns apperror NotFound when the id is not recorded.
	Get(ctx context.Context, deletedID id.ID) (Entry, error)

	Exists(ctx context.Context, deletedID id.ID) (bool, error)
	List(ctx context.Context) ([]Entry, error)

	// UpdateEntityType returns the updated entry or apperror NotFound.
	UpdateEntityType(ctx context.Context, deletedID id.ID, entityType string) (Entry, error)

	// Delete returns apperror NotFound when the id is not recorded.
	Delete(ctx context.Context, deletedID id.ID) error
}

// NewEntryNotFound is the error for an id with no ledger entry. Its side
// detail matches the association not-found errors.
func NewEntryNotFound(deletedID id.ID) *apperror.AppError {
	return apperror.NewNotFound(EntityName, deletedID).WithDetail("side", "ledger")
}

// IsEntryNotFound reports a missing ledger entry.
func IsEntryNotFound(err error) bool {
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeNotFound {
		return false
	}
	return appErr.Detail("entity") == EntityName
}

package association

import (
	"context"

	"storefront/internal/core/id"
)

// Repository persists the records of one relation type.
// Each relation has its own table and identity space.
type Repository interface {
	// Insert stores a new record and returns it with the generated id.
	Insert(ctx context.Context, leftID, rightID id.ID) (Record, error)

	// GetByID returns apperror NotFound when the record is absent.
	GetByID(ctx context.Context, recordID id.ID) (Record, error)

	// GetForUpdate is GetByID with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, recordID id.ID) (Record, error)

	List(ctx context.Context) ([]Record, error)

	// Update overwrites both foreign ids. NotFound when the record is absent.
	Update(ctx context.Context, rec Record) error

	// Delete removes one record. NotFound when the record is absent.
	Delete(ctx context.Context, recordID id.ID) error

	// DeleteByLeft and DeleteByRight remove every record pointing at the
	// given aggregate and return the removed records.
	DeleteByLeft(ctx context.Context, leftID id.ID) ([]Record, error)
	DeleteByRight(ctx context.Context, rightID id.ID) ([]Record, error)
}

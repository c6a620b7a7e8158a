// Package aggregate describes the primary business entities referenced by
// association records. Their CRUD is owned elsewhere; this package only
// models what the association core reads: lookup by id, existence and
// removal on purge.
package aggregate

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/core/id"
)

// Kind names an aggregate type. It doubles as the ledger entity type.
type Kind string

const (
	KindUser      Kind = "User"
	KindCart      Kind = "Cart"
	KindItem      Kind = "Item"
	KindProduct   Kind = "Product"
	KindCategory  Kind = "Category"
	KindInventory Kind = "Inventory"
	KindOrder     Kind = "Order"
	KindPayment   Kind = "Payment"
)

// Kinds lists every aggregate kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindUser, KindCart, KindItem, KindProduct,
		KindCategory, KindInventory, KindOrder, KindPayment,
	}
}

// ParseKind accepts the canonical name case-insensitively ("order", "Order").
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown aggregate kind %q", s)
}

// Lookup resolves aggregates of one kind.
// GetByID returns an apperror NotFound when the id does not resolve.
type Lookup[T any] interface {
	GetByID(ctx context.Context, id id.ID) (T, error)
	Exists(ctx context.Context, id id.ID) (bool, error)

	// GetForShare is GetByID holding a key-share lock until the transaction
	// ends. The row cannot be deleted while a link to it is being written.
	GetForShare(ctx context.Context, id id.ID) (T, error)
}

// Deleter removes an aggregate row. Only the purge path calls it.
type Deleter interface {
	Delete(ctx context.Context, id id.ID) error
}

// Store is the full capability the purge path needs per kind.
// LockForUpdate reports whether the row exists and, if it does, holds an
// exclusive row lock on it until the transaction ends.
type Store interface {
	LockForUpdate(ctx context.Context, id id.ID) (bool, error)
	Deleter
}

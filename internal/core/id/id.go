// Package id provides the surrogate identifier type used by every aggregate,
// association record and ledger entry. Identifiers are database-assigned
// positive integers (bigserial).
package id

import (
	"strconv"
	"strings"
)

// ID is the surrogate key type shared by all tables.
type ID = int64

// Valid reports whether v can be a persisted identifier.
func Valid(v ID) bool {
	return v > 0
}

// Parse converts a path or query value into an ID.
// Zero, negative and non-numeric values are rejected.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if !Valid(v) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// Ptr returns a pointer to v. Handy for optional patch fields.
func Ptr(v ID) *ID {
	return &v
}

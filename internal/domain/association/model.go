// Package association manages link records between two aggregates.
//
// A Manager owns the records of one relation type. Before any write it
// resolves the referenced aggregates through their lookups, so a persisted
// record never points at an aggregate that was missing at write time.
// Reads return what is stored; records whose aggregates were removed later
// (orphans) are reported by Orphans, never filtered.
package association

import (
	"fmt"
	"strings"

	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
)

// Record is one persisted link.
type Record struct {
	ID      id.ID `db:"id" json:"id"`
	LeftID  id.ID `db:"left_id" json:"leftId"`
	RightID id.ID `db:"right_id" json:"rightId"`
}

// Patch carries the optional new foreign ids of an update. Nil means keep.
type Patch struct {
	LeftID  *id.ID
	RightID *id.ID
}

// Empty reports whether neither side is supplied.
func (p Patch) Empty() bool {
	return p.LeftID == nil && p.RightID == nil
}

// Relation describes one relation type.
type Relation struct {
	// Name is the stable identifier used in logs, metrics and errors (e.g. "cart_item").
	Name string

	// Slug is the URL segment (e.g. "cart-items").
	Slug string

	Left  aggregate.Kind
	Right aggregate.Kind

	// ReportEmpty makes List flag a zero-record result explicitly.
	ReportEmpty bool
}

// References reports which sides of the relation point at kind.
func (r Relation) References(kind aggregate.Kind) (left, right bool) {
	return r.Left == kind, r.Right == kind
}

func (r Relation) String() string {
	return fmt.Sprintf("%s(%s-%s)", r.Name, r.Left, r.Right)
}

// Orphan is a stored record with at least one side that no longer resolves.
type Orphan struct {
	Record       Record `json:"record"`
	LeftMissing  bool   `json:"leftMissing"`
	RightMissing bool   `json:"rightMissing"`
}

// UpdatePolicy selects which sides an update re-resolves.
type UpdatePolicy int

const (
	// RevalidateBoth re-resolves both effective foreign ids on every update,
	// including updates that supply neither field.
	RevalidateBoth UpdatePolicy = iota

	// RevalidateChanged re-resolves only the sides present in the patch.
	RevalidateChanged
)

func (p UpdatePolicy) String() string {
	switch p {
	case RevalidateChanged:
		return "changed"
	default:
		return "both"
	}
}

// ParseUpdatePolicy maps "both" / "changed" to a policy. Empty means both.
func ParseUpdatePolicy(s string) (UpdatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return RevalidateBoth, nil
	case "changed":
		return RevalidateChanged, nil
	}
	return RevalidateBoth, fmt.Errorf("unknown update policy %q", s)
}

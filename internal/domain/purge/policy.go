// Package purge removes a primary aggregate together with the association
// records pointing at it and records a ledger tombstone, all in one
// transaction.
package purge

import (
	"fmt"
	"strings"

	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
)

// Action is what happens to a relation's records when one of its
// aggregates is purged.
type Action int

const (
	// Detach deletes the records referencing the purged aggregate.
	Detach Action = iota
	// Keep leaves them in place; they become orphans.
	Keep
)

func (a Action) String() string {
	if a == Keep {
		return "keep"
	}
	return "detach"
}

// CascadePolicy decides the action for one relation when an aggregate of
// kind is purged. It is only consulted for relations referencing kind.
type CascadePolicy func(rel association.Relation, kind aggregate.Kind) Action

// DetachAll detaches every referencing relation.
func DetachAll(association.Relation, aggregate.Kind) Action {
	return Detach
}

// KeepRelations keeps the records of the named relations and detaches the rest.
func KeepRelations(names ...string) CascadePolicy {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	return func(rel association.Relation, _ aggregate.Kind) Action {
		if _, ok := keep[rel.Name]; ok {
			return Keep
		}
		return Detach
	}
}

// ParseKeepList parses a comma separated relation list ("order_payment,order_item").
func ParseKeepList(s string, known []association.Relation) ([]string, error) {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		found := false
		for _, rel := range known {
			if rel.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown relation %q", name)
		}
		names = append(names, name)
	}
	return names, nil
}

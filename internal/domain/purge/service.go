package purge

import (
	"context"
	"fmt"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/core/tx"
	"storefront/internal/domain/aggregate"
	"storefront/internal/domain/association"
	"storefront/internal/domain/ledger"
	"storefront/pkg/logger"
)

// Detached is the outcome for one relation.
type Detached struct {
	Relation string `json:"relation"`
	Action   string `json:"action"`
	Removed  int64  `json:"removed"`
}

// Report describes a completed purge.
type Report struct {
	Kind      aggregate.Kind `json:"kind"`
	ID        id.ID          `json:"id"`
	Relations []Detached     `json:"relations"`
	Tombstone ledger.Entry   `json:"tombstone"`
}

// Service purges aggregates.
type Service struct {
	stores    map[aggregate.Kind]aggregate.Store
	relations []association.Service
	ledger    *ledger.Service
	txManager tx.Manager
	policy    CascadePolicy
}

// NewService creates a purge service. A nil policy detaches everything.
func NewService(
	stores map[aggregate.Kind]aggregate.Store,
	relations []association.Service,
	ledgerSvc *ledger.Service,
	txManager tx.Manager,
	policy CascadePolicy,
) *Service {
	if policy == nil {
		policy = DetachAll
	}
	return &Service{
		stores:    stores,
		relations: relations,
		ledger:    ledgerSvc,
		txManager: txManager,
		policy:    policy,
	}
}

// Purge deletes the aggregate, applies the cascade policy to every relation
// referencing its kind and records a tombstone. Any failure rolls back all
// of it.
func (s *Service) Purge(ctx context.Context, kind aggregate.Kind, aggregateID id.ID) (Report, error) {
	if !id.Valid(aggregateID) {
		return Report{}, apperror.NewInvalidArgument("id", aggregateID)
	}
	store, ok := s.stores[kind]
	if !ok {
		return Report{}, apperror.NewInvalidArgument("kind", string(kind))
	}

	report := Report{Kind: kind, ID: aggregateID, Relations: []Detached{}}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Held until commit; link writers resolving this id wait on it.
		exists, err := store.LockForUpdate(ctx, aggregateID)
		if err != nil {
			return fmt.Errorf("lock %s %d: %w", kind, aggregateID, err)
		}
		if !exists {
			return apperror.NewNotFound(string(kind), aggregateID)
		}

		for _, svc := range s.relations {
			rel := svc.Relation()
			left, right := rel.References(kind)
			if !left && !right {
				continue
			}

			action := s.policy(rel, kind)
			outcome := Detached{Relation: rel.Name, Action: action.String()}
			if action == Detach {
				if left {
					n, err := svc.DetachLeft(ctx, aggregateID)
					if err != nil {
						return err
					}
					outcome.Removed += n
				}
				if right {
					n, err := svc.DetachRight(ctx, aggregateID)
					if err != nil {
						return err
					}
					outcome.Removed += n
				}
			}
			report.Relations = append(report.Relations, outcome)
		}

		if err := store.Delete(ctx, aggregateID); err != nil {
			return fmt.Errorf("delete %s %d: %w", kind, aggregateID, err)
		}

		entry, err := s.ledger.Record(ctx, aggregateID, string(kind))
		if err != nil {
			return err
		}
		report.Tombstone = entry
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	logger.Info(ctx, "aggregate purged",
		"kind", string(kind),
		"id", aggregateID,
		"relations", len(report.Relations),
	)
	return report, nil
}

package association

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/core/tx"
	"storefront/internal/domain"
	"storefront/internal/domain/aggregate"
	"storefront/pkg/logger"
)

var tracer = otel.Tracer("storefront/association")

// Service is the relation-agnostic view of a Manager used by HTTP handlers
// and the purge path.
type Service interface {
	Relation() Relation
	Create(ctx context.Context, leftID, rightID id.ID) (Record, error)
	Get(ctx context.Context, recordID id.ID) (Record, error)
	List(ctx context.Context) (domain.ListResult[Record], error)
	Update(ctx context.Context, recordID id.ID, patch Patch) (Record, error)
	Delete(ctx context.Context, recordID id.ID) error
	DetachLeft(ctx context.Context, leftID id.ID) (int64, error)
	DetachRight(ctx context.Context, rightID id.ID) (int64, error)
	Orphans(ctx context.Context) ([]Orphan, error)
	Hooks() *domain.HookRegistry[Record]
}

// Compile-time check.
var _ Service = (*Manager[struct{}, struct{}])(nil)

// Config configures a Manager.
type Config[L, R any] struct {
	Relation  Relation
	Repo      Repository
	Left      aggregate.Lookup[L]
	Right     aggregate.Lookup[R]
	TxManager tx.Manager
	Policy    UpdatePolicy
}

// Manager owns the lifecycle of one relation's records.
// It holds no mutable state besides startup-time hook registration.
type Manager[L, R any] struct {
	relation  Relation
	repo      Repository
	left      aggregate.Lookup[L]
	right     aggregate.Lookup[R]
	txManager tx.Manager
	policy    UpdatePolicy
	hooks     *domain.HookRegistry[Record]
}

// NewManager creates a Manager for one relation.
func NewManager[L, R any](cfg Config[L, R]) *Manager[L, R] {
	return &Manager[L, R]{
		relation:  cfg.Relation,
		repo:      cfg.Repo,
		left:      cfg.Left,
		right:     cfg.Right,
		txManager: cfg.TxManager,
		policy:    cfg.Policy,
		hooks:     domain.NewHookRegistry[Record](),
	}
}

// Relation returns the relation this manager serves.
func (m *Manager[L, R]) Relation() Relation {
	return m.relation
}

// Hooks returns the hook registry for external registration.
func (m *Manager[L, R]) Hooks() *domain.HookRegistry[Record] {
	return m.hooks
}

// Policy returns the configured update policy.
func (m *Manager[L, R]) Policy() UpdatePolicy {
	return m.policy
}

// Create links leftID and rightID after both resolve.
func (m *Manager[L, R]) Create(ctx context.Context, leftID, rightID id.ID) (rec Record, err error) {
	ctx, span := m.startSpan(ctx, "create")
	defer func() { endSpan(span, err) }()

	if !id.Valid(leftID) {
		return Record{}, apperror.NewInvalidArgument("leftId", leftID)
	}
	if !id.Valid(rightID) {
		return Record{}, apperror.NewInvalidArgument("rightId", rightID)
	}

	err = m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := m.resolveLeft(ctx, leftID); err != nil {
			return err
		}
		if err := m.resolveRight(ctx, rightID); err != nil {
			return err
		}

		created, err := m.repo.Insert(ctx, leftID, rightID)
		if err != nil {
			return fmt.Errorf("create %s association: %w", m.relation.Name, err)
		}
		rec = created
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	span.SetAttributes(attribute.Int64("association.id", rec.ID))
	logger.Info(ctx, "association created", m.logFields(rec)...)
	m.runHook(ctx, domain.AfterCreate, rec)

	return rec, nil
}

// Get returns the stored record without re-resolving its aggregates.
func (m *Manager[L, R]) Get(ctx context.Context, recordID id.ID) (rec Record, err error) {
	ctx, span := m.startSpan(ctx, "get")
	defer func() { endSpan(span, err) }()

	if !id.Valid(recordID) {
		return Record{}, apperror.NewInvalidArgument("id", recordID)
	}

	err = tx.ReadOnly(ctx, m.txManager, func(ctx context.Context) error {
		found, err := m.repo.GetByID(ctx, recordID)
		if err != nil {
			return m.normalizeRecordErr(err, recordID)
		}
		rec = found
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every record of the relation, orphans included.
func (m *Manager[L, R]) List(ctx context.Context) (result domain.ListResult[Record], err error) {
	ctx, span := m.startSpan(ctx, "list")
	defer func() { endSpan(span, err) }()

	var records []Record
	err = tx.ReadOnly(ctx, m.txManager, func(ctx context.Context) error {
		var err error
		records, err = m.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list %s associations: %w", m.relation.Name, err)
		}
		return nil
	})
	if err != nil {
		return domain.ListResult[Record]{}, err
	}

	if records == nil {
		records = []Record{}
	}
	return domain.ListResult[Record]{
		Items:      records,
		TotalCount: int64(len(records)),
		Empty:      m.relation.ReportEmpty && len(records) == 0,
	}, nil
}

// Update applies patch to the record. Which sides are re-resolved depends on
// the policy; any failure leaves the stored record untouched.
func (m *Manager[L, R]) Update(ctx context.Context, recordID id.ID, patch Patch) (rec Record, err error) {
	ctx, span := m.startSpan(ctx, "update")
	defer func() { endSpan(span, err) }()

	if !id.Valid(recordID) {
		return Record{}, apperror.NewInvalidArgument("id", recordID)
	}
	if patch.LeftID != nil && !id.Valid(*patch.LeftID) {
		return Record{}, apperror.NewInvalidArgument("leftId", *patch.LeftID)
	}
	if patch.RightID != nil && !id.Valid(*patch.RightID) {
		return Record{}, apperror.NewInvalidArgument("rightId", *patch.RightID)
	}

	err = m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := m.repo.GetForUpdate(ctx, recordID)
		if err != nil {
			return m.normalizeRecordErr(err, recordID)
		}

		next := current
		if patch.LeftID != nil {
			next.LeftID = *patch.LeftID
		}
		if patch.RightID != nil {
			next.RightID = *patch.RightID
		}

		if m.policy == RevalidateBoth || patch.LeftID != nil {
			if err := m.resolveLeft(ctx, next.LeftID); err != nil {
				return err
			}
		}
		if m.policy == RevalidateBoth || patch.RightID != nil {
			if err := m.resolveRight(ctx, next.RightID); err != nil {
				return err
			}
		}

		if err := m.repo.Update(ctx, next); err != nil {
			if apperror.IsNotFound(err) {
				return notFound(m.relation, SideAssociation, recordID)
			}
			return fmt.Errorf("update %s association: %w", m.relation.Name, err)
		}
		rec = next
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	logger.Info(ctx, "association updated", m.logFields(rec)...)
	m.runHook(ctx, domain.AfterUpdate, rec)

	return rec, nil
}

// Delete removes the record. Deleting an absent record always fails.
func (m *Manager[L, R]) Delete(ctx context.Context, recordID id.ID) (err error) {
	ctx, span := m.startSpan(ctx, "delete")
	defer func() { endSpan(span, err) }()

	if !id.Valid(recordID) {
		return apperror.NewInvalidArgument("id", recordID)
	}

	var removed Record
	err = m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		found, err := m.repo.GetForUpdate(ctx, recordID)
		if err != nil {
			return m.normalizeRecordErr(err, recordID)
		}
		if err := m.repo.Delete(ctx, recordID); err != nil {
			return m.normalizeRecordErr(err, recordID)
		}
		removed = found
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "association deleted", m.logFields(removed)...)
	m.runHook(ctx, domain.AfterDelete, removed)

	return nil
}

// DetachLeft removes every record whose left side is leftID and runs the
// after-delete hooks for each. It joins the caller's transaction when one is
// active.
func (m *Manager[L, R]) DetachLeft(ctx context.Context, leftID id.ID) (int64, error) {
	return m.detach(ctx, SideLeft, leftID, m.repo.DeleteByLeft)
}

// DetachRight removes every record whose right side is rightID.
func (m *Manager[L, R]) DetachRight(ctx context.Context, rightID id.ID) (int64, error) {
	return m.detach(ctx, SideRight, rightID, m.repo.DeleteByRight)
}

func (m *Manager[L, R]) detach(
	ctx context.Context,
	side Side,
	aggregateID id.ID,
	del func(context.Context, id.ID) ([]Record, error),
) (n int64, err error) {
	ctx, span := m.startSpan(ctx, "detach_"+string(side))
	defer func() { endSpan(span, err) }()

	if !id.Valid(aggregateID) {
		return 0, apperror.NewInvalidArgument(string(side)+"Id", aggregateID)
	}

	var removed []Record
	err = m.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = del(ctx, aggregateID)
		if err != nil {
			return fmt.Errorf("detach %s %s %d: %w", m.relation.Name, side, aggregateID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	n = int64(len(removed))
	if n > 0 {
		logger.Info(ctx, "associations detached",
			"relation", m.relation.Name,
			"side", string(side),
			"aggregate_id", aggregateID,
			"count", n,
		)
	}
	for _, rec := range removed {
		m.runHook(ctx, domain.AfterDelete, rec)
	}
	return n, nil
}

// Orphans cross-checks every stored record against both lookups.
// It never mutates anything.
func (m *Manager[L, R]) Orphans(ctx context.Context) (orphans []Orphan, err error) {
	ctx, span := m.startSpan(ctx, "orphans")
	defer func() { endSpan(span, err) }()

	orphans = []Orphan{}
	err = tx.ReadOnly(ctx, m.txManager, func(ctx context.Context) error {
		records, err := m.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list %s associations: %w", m.relation.Name, err)
		}
		for _, rec := range records {
			leftOK, err := m.left.Exists(ctx, rec.LeftID)
			if err != nil {
				return fmt.Errorf("check %s %d: %w", m.relation.Left, rec.LeftID, err)
			}
			rightOK, err := m.right.Exists(ctx, rec.RightID)
			if err != nil {
				return fmt.Errorf("check %s %d: %w", m.relation.Right, rec.RightID, err)
			}
			if !leftOK || !rightOK {
				orphans = append(orphans, Orphan{Record: rec, LeftMissing: !leftOK, RightMissing: !rightOK})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orphans, nil
}

// --- helpers ---

func (m *Manager[L, R]) resolveLeft(ctx context.Context, leftID id.ID) error {
	if _, err := m.left.GetForShare(ctx, leftID); err != nil {
		if apperror.IsNotFound(err) {
			return notFound(m.relation, SideLeft, leftID)
		}
		return fmt.Errorf("resolve %s %d: %w", m.relation.Left, leftID, err)
	}
	return nil
}

func (m *Manager[L, R]) resolveRight(ctx context.Context, rightID id.ID) error {
	if _, err := m.right.GetForShare(ctx, rightID); err != nil {
		if apperror.IsNotFound(err) {
			return notFound(m.relation, SideRight, rightID)
		}
		return fmt.Errorf("resolve %s %d: %w", m.relation.Right, rightID, err)
	}
	return nil
}

func (m *Manager[L, R]) normalizeRecordErr(err error, recordID id.ID) error {
	if apperror.IsNotFound(err) {
		return notFound(m.relation, SideAssociation, recordID)
	}
	return fmt.Errorf("%s association %d: %w", m.relation.Name, recordID, err)
}

// runHook runs hooks once the manager's own unit of work has finished. When
// the call joined an outer transaction, that transaction may not have
// committed yet. A hook failure is logged, not returned.
func (m *Manager[L, R]) runHook(ctx context.Context, event domain.HookEvent, rec Record) {
	if err := m.hooks.Run(ctx, event, rec); err != nil {
		logger.Warn(ctx, "association hook failed",
			"relation", m.relation.Name,
			"event", string(event),
			"error", err,
		)
	}
}

func (m *Manager[L, R]) logFields(rec Record) []any {
	return []any{
		"relation", m.relation.Name,
		"association_id", rec.ID,
		"left_id", rec.LeftID,
		"right_id", rec.RightID,
	}
}

func (m *Manager[L, R]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "association."+m.relation.Name+"."+op,
		trace.WithAttributes(attribute.String("relation", m.relation.Name)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/core/tx"
	"storefront/pkg/logger"
)

// Service provides the ledger operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a tombstone. A second record for the same id fails with Duplicate
// and leaves the first entry untouched.
func (s *Service) Record(ctx context.Context, deletedID id.ID, entityType string) (Entry, error) {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return Entry{}, apperror.NewInvalidArgument("entityType", entityType)
	}
	if !id.Valid(deletedID) {
		return Entry{}, apperror.NewInvalidArgument("deletedId", deletedID)
	}

	entry := Entry{
		DeletedID:  deletedID,
		EntityType: entityType,
		RecordedAt: s.now(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.Exists(ctx, deletedID)
		if err != nil {
			return fmt.Errorf("check ledger entry: %w", err)
		}
		if exists {
			return apperror.NewDuplicate(EntityName, "deletedId", deletedID)
		}
		if err := s.repo.Insert(ctx, entry); err != nil {
			if apperror.IsDuplicate(err) {
				return err
			}
			return fmt.Errorf("insert ledger entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	logger.Info(ctx, "deletion recorded", "deleted_id", deletedID, "entity_type", entityType)
	return entry, nil
}

// Get returns the entry and whether it exists. Absence is not an error.
func (s *Service) Get(ctx context.Context, deletedID id.ID) (Entry, bool, error) {
	if !id.Valid(deletedID) {
		return Entry{}, false, nil
	}

	var (
		entry Entry
		found bool
	)
	err := tx.ReadOnly(ctx, s.txManager, func(ctx context.Context) error {
		e, err := s.repo.Get(ctx, deletedID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get ledger entry: %w", err)
		}
		entry, found = e, true
		return nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return entry, found, nil
}

// List returns every entry.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := tx.ReadOnly(ctx, s.txManager, func(ctx context.Context) error {
		var err error
		entries, err = s.repo.List(ctx)
		if err != nil {
			return fmt.Errorf("list ledger entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Update corrects the entity type of an existing entry. The id is immutable.
func (s *Service) Update(ctx context.Context, deletedID id.ID, entityType string) (Entry, error) {
	if !id.Valid(deletedID) {
		return Entry{}, apperror.NewInvalidArgument("deletedId", deletedID)
	}
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return Entry{}, apperror.NewInvalidArgument("entityType", entityType)
	}

	var entry Entry
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err := s.repo.UpdateEntityType(ctx, deletedID, entityType)
		if err != nil {
			return normalizeErr(err, deletedID, "update")
		}
		entry = e
		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	logger.Info(ctx, "deletion entry updated", "deleted_id", deletedID, "entity_type", entityType)
	return entry, nil
}

// Delete removes an entry once reconciliation is complete.
func (s *Service) Delete(ctx context.Context, deletedID id.ID) error {
	if !id.Valid(deletedID) {
		return apperror.NewInvalidArgument("deletedId", deletedID)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, deletedID); err != nil {
			return normalizeErr(err, deletedID, "delete")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "deletion entry removed", "deleted_id", deletedID)
	return nil
}

func normalizeErr(err error, deletedID id.ID, op string) error {
	if apperror.IsNotFound(err) {
		return NewEntryNotFound(deletedID)
	}
	return fmt.Errorf("%s ledger entry %d: %w", op, deletedID, err)
}

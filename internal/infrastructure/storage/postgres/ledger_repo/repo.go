// Package ledger_repo persists deletion ledger entries in deleted_ids.
package ledger_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/ledger"
	"storefront/internal/infrastructure/storage/postgres"
)

const tableName = "deleted_ids"

// SQLSTATE unique_violation.
const uniqueViolation = "23505"

var _ ledger.Repository = (*Repo)(nil)

// Repo implements ledger.Repository.
type Repo struct {
	selectCols []string
	txManager  *postgres.TxManager
}

// New creates a ledger repository.
func New(txManager *postgres.TxManager) *Repo {
	return &Repo{
		selectCols: postgres.ExtractDBColumns[ledger.Entry](),
		txManager:  txManager,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(tableName)
}

func (r *Repo) Insert(ctx context.Context, e ledger.Entry) error {
	sql, args, err := r.Builder().
		Insert(tableName).
		Columns(r.selectCols...).
		Values(e.DeletedID, e.EntityType, e.RecordedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewDuplicate(ledger.EntityName, "deletedId", e.DeletedID).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", tableName, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, deletedID id.ID) (ledger.Entry, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"deleted_id": deletedID}).Limit(1).ToSql()
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("build query: %w", err)
	}

	var e ledger.Entry
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.Entry{}, ledger.NewEntryNotFound(deletedID)
		}
		return ledger.Entry{}, fmt.Errorf("get %s: %w", tableName, err)
	}
	return e, nil
}

func (r *Repo) Exists(ctx context.Context, deletedID id.ID) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(tableName).
		Where(squirrel.Eq{"deleted_id": deletedID}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", tableName, err)
	}
	return exists, nil
}

func (r *Repo) List(ctx context.Context) ([]ledger.Entry, error) {
	sql, args, err := r.baseSelect().OrderBy("deleted_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []ledger.Entry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", tableName, err)
	}
	return entries, nil
}

func (r *Repo) UpdateEntityType(ctx context.Context, deletedID id.ID, entityType string) (ledger.Entry, error) {
	sql, args, err := r.updateQuery(deletedID, entityType).ToSql()
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("build update: %w", err)
	}

	var e ledger.Entry
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.Entry{}, ledger.NewEntryNotFound(deletedID)
		}
		return ledger.Entry{}, fmt.Errorf("update %s: %w", tableName, err)
	}
	return e, nil
}

func (r *Repo) updateQuery(deletedID id.ID, entityType string) squirrel.UpdateBuilder {
	return r.Builder().
		Update(tableName).
		Set("entity_type", entityType).
		Where(squirrel.Eq{"deleted_id": deletedID}).
		Suffix("RETURNING deleted_id, entity_type, recorded_at")
}

func (r *Repo) Delete(ctx context.Context, deletedID id.ID) error {
	sql, args, err := r.Builder().Delete(tableName).Where(squirrel.Eq{"deleted_id": deletedID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", tableName, err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.NewEntryNotFound(deletedID)
	}
	return nil
}

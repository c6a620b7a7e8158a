// Package aggregate_repo reads and removes primary aggregates. It exposes
// exactly the lookup capability the association core consumes, plus Insert
// for the seed command and Delete for the purge path.
package aggregate_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/aggregate"
	"storefront/internal/infrastructure/storage/postgres"
)

var (
	_ aggregate.Lookup[aggregate.Order] = (*Repo[aggregate.Order])(nil)
	_ aggregate.Store                   = (*Repo[aggregate.Order])(nil)
)

// Repo is a generic repository over one aggregate table.
type Repo[T any] struct {
	kind       aggregate.Kind
	tableName  string
	selectCols []string
	txManager  *postgres.TxManager
}

// New creates a repository; columns come from T's db tags.
func New[T any](txManager *postgres.TxManager, kind aggregate.Kind, tableName string) *Repo[T] {
	return &Repo[T]{
		kind:       kind,
		tableName:  tableName,
		selectCols: postgres.ExtractDBColumns[T](),
		txManager:  txManager,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *Repo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Kind returns the aggregate kind served by the repository.
func (r *Repo[T]) Kind() aggregate.Kind {
	return r.kind
}

func (r *Repo[T]) selectByID(key id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": key}).
		Limit(1)
}

// selectForShare blocks concurrent deletes of the row, not concurrent readers
// or non-key updates.
func (r *Repo[T]) selectForShare(key id.ID) squirrel.SelectBuilder {
	return r.selectByID(key).Suffix("FOR KEY SHARE")
}

func (r *Repo[T]) lockQuery(key id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select("id").
		From(r.tableName).
		Where(squirrel.Eq{"id": key}).
		Suffix("FOR UPDATE")
}

func (r *Repo[T]) existsQuery(key id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": key}).
		Prefix("SELECT EXISTS(").
		Suffix(")")
}

func (r *Repo[T]) insertQuery(entity T) squirrel.InsertBuilder {
	data := postgres.StructToMap(entity)
	delete(data, "id")
	return r.Builder().
		Insert(r.tableName).
		SetMap(data).
		Suffix("RETURNING id")
}

func (r *Repo[T]) GetByID(ctx context.Context, key id.ID) (T, error) {
	return r.get(ctx, r.selectByID(key), key)
}

// GetForShare must run inside a transaction for the lock to outlive the call.
func (r *Repo[T]) GetForShare(ctx context.Context, key id.ID) (T, error) {
	return r.get(ctx, r.selectForShare(key), key)
}

func (r *Repo[T]) get(ctx context.Context, q squirrel.SelectBuilder, key id.ID) (T, error) {
	var entity T

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(string(r.kind), key)
		}
		return entity, fmt.Errorf("get %s: %w", r.tableName, err)
	}
	return entity, nil
}

func (r *Repo[T]) Exists(ctx context.Context, key id.ID) (bool, error) {
	sql, args, err := r.existsQuery(key).ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", r.tableName, err)
	}
	return exists, nil
}

// LockForUpdate takes the row lock the purge path holds while it detaches
// links and deletes the row.
func (r *Repo[T]) LockForUpdate(ctx context.Context, key id.ID) (bool, error) {
	sql, args, err := r.lockQuery(key).ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var locked id.ID
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock %s: %w", r.tableName, err)
	}
	return true, nil
}

// Insert stores entity and returns the generated id. The id field is ignored.
func (r *Repo[T]) Insert(ctx context.Context, entity T) (id.ID, error) {
	sql, args, err := r.insertQuery(entity).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var newID id.ID
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return newID, nil
}

func (r *Repo[T]) Delete(ctx context.Context, key id.ID) error {
	sql, args, err := r.Builder().Delete(r.tableName).Where(squirrel.Eq{"id": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(string(r.kind), key)
	}
	return nil
}

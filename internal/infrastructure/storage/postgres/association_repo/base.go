// Package association_repo stores association records, one table per relation.
package association_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storefront/internal/core/apperror"
	"storefront/internal/core/id"
	"storefront/internal/domain/association"
	"storefront/internal/infrastructure/storage/postgres"
)

var _ association.Repository = (*Repo)(nil)

// Table maps a relation onto its link table.
type Table struct {
	Name        string
	LeftColumn  string
	RightColumn string
}

// Repo implements association.Repository for one link table.
// The relation-specific foreign key columns are aliased to left_id/right_id
// so every table scans into association.Record.
type Repo struct {
	table     Table
	entity    string
	txManager *postgres.TxManager
}

// New creates a repository for table; entity names the record in errors.
func New(txManager *postgres.TxManager, table Table, entity string) *Repo {
	return &Repo{
		table:     table,
		entity:    entity,
		txManager: txManager,
	}
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(
			"id",
			r.table.LeftColumn+" AS left_id",
			r.table.RightColumn+" AS right_id",
		).
		From(r.table.Name)
}

func (r *Repo) insertQuery(leftID, rightID id.ID) squirrel.InsertBuilder {
	return r.Builder().
		Insert(r.table.Name).
		Columns(r.table.LeftColumn, r.table.RightColumn).
		Values(leftID, rightID).
		Suffix("RETURNING id")
}

func (r *Repo) selectByID(recordID id.ID, lock bool) squirrel.SelectBuilder {
	q := r.baseSelect().Where(squirrel.Eq{"id": recordID})
	if lock {
		return q.Suffix("FOR UPDATE")
	}
	return q.Limit(1)
}

func (r *Repo) updateQuery(rec association.Record) squirrel.UpdateBuilder {
	return r.Builder().
		Update(r.table.Name).
		Set(r.table.LeftColumn, rec.LeftID).
		Set(r.table.RightColumn, rec.RightID).
		Where(squirrel.Eq{"id": rec.ID})
}

func (r *Repo) deleteWhere(column string, value id.ID) squirrel.DeleteBuilder {
	return r.Builder().Delete(r.table.Name).Where(squirrel.Eq{column: value})
}

func (r *Repo) Insert(ctx context.Context, leftID, rightID id.ID) (association.Record, error) {
	sql, args, err := r.insertQuery(leftID, rightID).ToSql()
	if err != nil {
		return association.Record{}, fmt.Errorf("build insert: %w", err)
	}

	rec := association.Record{LeftID: leftID, RightID: rightID}
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&rec.ID); err != nil {
		return association.Record{}, fmt.Errorf("insert %s: %w", r.table.Name, err)
	}
	return rec, nil
}

func (r *Repo) GetByID(ctx context.Context, recordID id.ID) (association.Record, error) {
	return r.get(ctx, r.selectByID(recordID, false), recordID)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, recordID id.ID) (association.Record, error) {
	return r.get(ctx, r.selectByID(recordID, true), recordID)
}

func (r *Repo) get(ctx context.Context, q squirrel.SelectBuilder, recordID id.ID) (association.Record, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return association.Record{}, fmt.Errorf("build query: %w", err)
	}

	var rec association.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return association.Record{}, apperror.NewNotFound(r.entity, recordID)
		}
		return association.Record{}, fmt.Errorf("get %s: %w", r.table.Name, err)
	}
	return rec, nil
}

func (r *Repo) List(ctx context.Context) ([]association.Record, error) {
	sql, args, err := r.baseSelect().OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []association.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.Name, err)
	}
	return records, nil
}

func (r *Repo) Update(ctx context.Context, rec association.Record) error {
	n, err := r.exec(ctx, r.updateQuery(rec))
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table.Name, err)
	}
	if n == 0 {
		return apperror.NewNotFound(r.entity, rec.ID)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, recordID id.ID) error {
	n, err := r.exec(ctx, r.deleteWhere("id", recordID))
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table.Name, err)
	}
	if n == 0 {
		return apperror.NewNotFound(r.entity, recordID)
	}
	return nil
}

func (r *Repo) DeleteByLeft(ctx context.Context, leftID id.ID) ([]association.Record, error) {
	return r.detach(ctx, r.table.LeftColumn, leftID)
}

func (r *Repo) DeleteByRight(ctx context.Context, rightID id.ID) ([]association.Record, error) {
	return r.detach(ctx, r.table.RightColumn, rightID)
}

func (r *Repo) detachQuery(column string, value id.ID) squirrel.DeleteBuilder {
	return r.deleteWhere(column, value).Suffix(
		"RETURNING id, " + r.table.LeftColumn + " AS left_id, " + r.table.RightColumn + " AS right_id",
	)
}

func (r *Repo) detach(ctx context.Context, column string, value id.ID) ([]association.Record, error) {
	sql, args, err := r.detachQuery(column, value).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete: %w", err)
	}

	var removed []association.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &removed, sql, args...); err != nil {
		return nil, fmt.Errorf("detach %s: %w", r.table.Name, err)
	}
	return removed, nil
}

func (r *Repo) exec(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

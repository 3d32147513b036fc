// Package repository provides a generic data access layer over a relational
// store. Entity repositories supply a ModelHandlers value (table, primary
// key, mapping hooks) and get uniform find/create/update/delete semantics
// with filter-to-clause translation and pagination, without hand-writing
// query strings.
package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sort"
	"time"

	"github.com/uptrace/bun"

	"github.com/entitykit/entitykit/errors"
)

// Repository is the uniform CRUD contract. Read misses are signaled with an
// explicit found/deleted flag, never an error; store failures are always
// propagated as errors.KindStore.
type Repository[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, bool, error)
	FindAll(ctx context.Context, filters []Filter, page Pagination) (Result[T], error)
	FindOneBy(ctx context.Context, field string, value any) (*T, bool, error)
	ExistsBy(ctx context.Context, field string, value any) (bool, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, id int64, patch *T) (*T, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Handlers() ModelHandlers[T]
}

// Interface assertion to ensure BunRepository implements Repository[T].
var _ Repository[struct{}] = (*BunRepository[struct{}])(nil)

// BunRepository implements Repository against a bun.DB. The DB handle is the
// process-wide shared pool; each call is its own atomic unit at the store and
// no transaction spans multiple calls.
type BunRepository[T any] struct {
	db *bun.DB
	h  ModelHandlers[T]
}

// New creates the bun-backed repository for T. T must be a struct with bun
// tags whose table matches handlers.Table.
func New[T any](db *bun.DB, handlers ModelHandlers[T]) *BunRepository[T] {
	return &BunRepository[T]{db: db, h: handlers.withDefaults()}
}

// Handlers returns the model handlers this repository was built with.
func (r *BunRepository[T]) Handlers() ModelHandlers[T] {
	return r.h
}

// FindByID returns the entity or (nil, false, nil) when no record matches.
func (r *BunRepository[T]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	if id <= 0 {
		return nil, false, errors.NewValidation("id must be a positive integer, got %d", id)
	}
	return r.findOne(ctx, r.h.PK, id)
}

// FindOneBy returns the first entity matching a natural-key column. The field
// must be declared filterable.
func (r *BunRepository[T]) FindOneBy(ctx context.Context, field string, value any) (*T, bool, error) {
	col, ok := r.h.Filterable[field]
	if !ok {
		return nil, false, errors.NewValidation("field %q is not filterable", field)
	}
	return r.findOne(ctx, col, value)
}

func (r *BunRepository[T]) findOne(ctx context.Context, col string, value any) (*T, bool, error) {
	rec := r.h.NewRecord()
	err := r.db.NewSelect().
		Model(rec).
		Where("? = ?", bun.Ident(col), value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.NewStore(err, "select from %s", r.h.Table)
	}
	return rec, true, nil
}

// ExistsBy reports whether any record matches a natural-key column.
func (r *BunRepository[T]) ExistsBy(ctx context.Context, field string, value any) (bool, error) {
	col, ok := r.h.Filterable[field]
	if !ok {
		return false, errors.NewValidation("field %q is not filterable", field)
	}
	exists, err := r.db.NewSelect().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident(col), value).
		Exists(ctx)
	if err != nil {
		return false, errors.NewStore(err, "exists query on %s", r.h.Table)
	}
	return exists, nil
}

// FindAll returns one page of the filtered set. Ordering is by primary key so
// repeated calls are stable absent concurrent writes; Total reflects the
// whole filtered set, not the page.
func (r *BunRepository[T]) FindAll(ctx context.Context, filters []Filter, page Pagination) (Result[T], error) {
	if page == (Pagination{}) {
		page = DefaultPagination()
	}
	if err := page.Validate(); err != nil {
		return Result[T]{}, errors.NewValidation("invalid pagination: %v", err)
	}
	clauses, err := TranslateFilters(filters, r.h.Filterable)
	if err != nil {
		return Result[T]{}, err
	}

	var items []T
	q := r.db.NewSelect().Model(&items)
	for _, c := range clauses {
		q = q.Where(c.Expr, c.Args...)
	}
	total, err := q.
		OrderExpr("? ASC", bun.Ident(r.h.PK)).
		Limit(page.Size).
		Offset(page.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return Result[T]{}, errors.NewStore(err, "list %s", r.h.Table)
	}
	return NewResult(items, total, page), nil
}

// Create inserts the record, assigning the identifier and both timestamps.
// Callers must not supply an identifier.
func (r *BunRepository[T]) Create(ctx context.Context, record *T) (*T, error) {
	if record == nil {
		return nil, errors.NewValidation("record must not be nil")
	}
	if r.h.GetID != nil && r.h.GetID(record) != 0 {
		return nil, errors.NewValidation("identifier is assigned by the store, not the caller")
	}

	now := time.Now().UTC()
	if r.h.SetCreatedAt != nil {
		r.h.SetCreatedAt(record, now)
	}
	if r.h.SetUpdatedAt != nil {
		r.h.SetUpdatedAt(record, now)
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.NewStore(err, "insert into %s", r.h.Table)
	}
	return record, nil
}

// Update applies the set fields of patch to the record with the given id and
// refreshes the update timestamp. Absent fields stay untouched. Returns
// (nil, false, nil) when no record matches.
func (r *BunRepository[T]) Update(ctx context.Context, id int64, patch *T) (*T, bool, error) {
	if id <= 0 {
		return nil, false, errors.NewValidation("id must be a positive integer, got %d", id)
	}
	if patch == nil || r.h.Patch == nil {
		return nil, false, errors.NewValidation("update requires a patch and a Patch handler")
	}

	values := r.h.Patch(patch)
	if len(values) == 0 && r.h.SetUpdatedAt == nil {
		// Nothing to change; report whether the record exists.
		return r.FindByID(ctx, id)
	}

	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	q := r.db.NewUpdate().
		Table(r.h.Table).
		Where("? = ?", bun.Ident(r.h.PK), id)
	for _, col := range cols {
		q = q.Set("? = ?", bun.Ident(col), values[col])
	}
	if r.h.SetUpdatedAt != nil {
		q = q.Set("? = ?", bun.Ident("updated_at"), time.Now().UTC())
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, false, errors.NewStore(err, "update %s", r.h.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, errors.NewStore(err, "update %s: rows affected", r.h.Table)
	}
	if affected == 0 {
		return nil, false, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes the record and reports whether one was actually removed.
// A nonexistent id is a no-op, not an error.
func (r *BunRepository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, errors.NewValidation("id must be a positive integer, got %d", id)
	}
	res, err := r.db.NewDelete().
		Table(r.h.Table).
		Where("? = ?", bun.Ident(r.h.PK), id).
		Exec(ctx)
	if err != nil {
		return false, errors.NewStore(err, "delete from %s", r.h.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.NewStore(err, "delete from %s: rows affected", r.h.Table)
	}
	return affected > 0, nil
}

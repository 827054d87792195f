// This file implements the QueryBuilder type, a fluent, squirrel-backed
// SELECT builder for model T. It covers conditional filtering (WHERE),
// sorting (ORDER BY), pagination (LIMIT/OFFSET), column selection,
// deduplication (DISTINCT) and counting.
package sqltour

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rowanlith/sqltour/clause"
)

// ErrNotFound indicates that no record was found. Returned by Take(),
// First(), Last() and FindOne() when no row matches.
var ErrNotFound = errors.New("sqltour: record not found")

// QueryBuilder is a generic SQL query builder for model T.
//
//	users, err := userRepo.Query().
//	    Where(tour.UserFields.ID.Lt(1000)).
//	    OrderBy(tour.UserFields.ID.Asc()).
//	    Find(ctx)
type QueryBuilder[T any] struct {
	session *Session
	schema  Schema[T]

	// builder is the underlying squirrel SelectBuilder
	builder sq.SelectBuilder

	// columns overrides schema.SelectColumns() when set via Select()
	columns []string

	table string

	// err stores the first error that occurred during query building
	err error
}

// Query creates a new QueryBuilder instance, usually via Repository.Query().
// Model T must be registered via RegisterSchema[T]().
func Query[T any](session *Session) *QueryBuilder[T] {
	schema := LoadSchema[T]()
	table := schema.TableName()

	// Columns are resolved lazily in Find(), so Select() can still
	// override them after construction.
	sb := sq.Select().
		From(table).
		PlaceholderFormat(session.dialect.PlaceholderFormat())

	return &QueryBuilder[T]{
		session: session,
		schema:  schema,
		builder: sb,
		table:   table,
	}
}

// Where adds a WHERE condition to the query. Multiple calls are connected
// with AND; use clause.Or for OR conditions.
func (q *QueryBuilder[T]) Where(expr clause.Expression) *QueryBuilder[T] {
	if q.err != nil {
		return q
	}
	sql, args, err := expr.Build()
	if err != nil {
		q.err = err
		return q
	}
	q.builder = q.builder.Where(sq.Expr(sql, args...))
	return q
}

// OrderBy adds ORDER BY columns to the query.
func (q *QueryBuilder[T]) OrderBy(orders ...clause.OrderByColumn) *QueryBuilder[T] {
	if q.err != nil {
		return q
	}
	for _, order := range orders {
		sql, _, err := order.Build()
		if err != nil {
			q.err = err
			return q
		}
		q.builder = q.builder.OrderBy(sql)
	}
	return q
}

// Limit limits the number of records returned by the query.
func (q *QueryBuilder[T]) Limit(n uint64) *QueryBuilder[T] {
	q.builder = q.builder.Limit(n)
	return q
}

// Offset sets the offset for query results.
func (q *QueryBuilder[T]) Offset(n uint64) *QueryBuilder[T] {
	q.builder = q.builder.Offset(n)
	return q
}

// Distinct adds DISTINCT to the SELECT clause.
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.builder = q.builder.Distinct()
	return q
}

// Select replaces the selected columns. Arguments must implement
// clause.Columnar (e.g. field.String, clause.Column).
func (q *QueryBuilder[T]) Select(columns ...clause.Columnar) *QueryBuilder[T] {
	q.columns = ResolveColumnNames(columns)
	return q
}

// Find executes the query and returns all matching records. Returns an empty
// slice, not nil, when nothing matches.
func (q *QueryBuilder[T]) Find(ctx context.Context) ([]*T, error) {
	if q.err != nil {
		return nil, q.err
	}
	b := q.builder.Columns(q.resolveColumns()...)
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqltour: failed to build sql: %w", err)
	}

	results := make([]*T, 0)
	if err := q.session.Select(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("sqltour: query failed: %w", err)
	}

	return results, nil
}

// Scan executes the query and scans the results into a custom destination.
// dest can be a pointer to a struct or a pointer to a slice of structs.
func (q *QueryBuilder[T]) Scan(ctx context.Context, dest any) error {
	if q.err != nil {
		return q.err
	}
	b := q.builder.Columns(q.resolveColumns()...)
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("sqltour: failed to build sql: %w", err)
	}

	if err := q.session.Select(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("sqltour: query failed: %w", err)
	}
	return nil
}

// Take executes the query and returns a single record without imposing an
// ordering. Returns ErrNotFound if no record matches.
func (q *QueryBuilder[T]) Take(ctx context.Context) (*T, error) {
	results, err := q.Limit(1).Find(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

// First returns the first record ordered by primary key ascending.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	pk := q.schema.PK(nil).Column
	if pk.Table == "" {
		pk.Table = q.table
	}
	return q.OrderBy(clause.OrderByColumn{Column: pk, Desc: false}).Take(ctx)
}

// Last returns the last record ordered by primary key descending.
func (q *QueryBuilder[T]) Last(ctx context.Context) (*T, error) {
	pk := q.schema.PK(nil).Column
	if pk.Table == "" {
		pk.Table = q.table
	}
	return q.OrderBy(clause.OrderByColumn{Column: pk, Desc: true}).Take(ctx)
}

// Count returns the number of records matching the query conditions,
// ignoring any Limit/Offset settings.
func (q *QueryBuilder[T]) Count(ctx context.Context) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	b := q.builder.Columns("COUNT(*)").RemoveLimit().RemoveOffset()

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("sqltour: failed to build count sql: %w", err)
	}

	var count int64
	err = q.session.Get(ctx, &count, query, args...)
	return count, err
}

// ToSQL returns the SQL string and arguments without executing the query.
// Useful for testing and debugging generated SQL.
func (q *QueryBuilder[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	b := q.builder.Columns(q.resolveColumns()...)
	return b.ToSql()
}

func (q *QueryBuilder[T]) resolveColumns() []string {
	cols := q.columns
	if len(cols) == 0 {
		cols = q.schema.SelectColumns()
	}
	return cols
}

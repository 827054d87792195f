// This file implements the Repository type, the toolkit's object-mapping
// entry point. A Repository binds a registered Schema to a Session and
// provides type-safe create/read/update/delete operations for model T,
// building every statement with squirrel.
package sqltour

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rowanlith/sqltour/clause"
)

// Repository manages all CRUD operations for model T.
//
// Design principles carried through the whole type:
//   - Immutability: Where() returns a new Repository instance
//   - Composability: complex queries are built through method chaining
//   - Auto-increment backfill: Create() writes the assigned primary key
//     back onto the model before returning (the session "flush" semantics)
//
// Usage example:
//
//	userRepo := sqltour.NewRepository[tour.User](session)
//
//	user := &tour.User{Name: "Alice Almeron", DOB: dob}
//	if err := userRepo.Create(ctx, user); err != nil {
//	    return err
//	}
//	fmt.Println("assigned id:", user.ID)
type Repository[T any] struct {
	session *Session            // Database session
	schema  Schema[T]           // Model's Schema implementation
	scopes  []clause.Expression // Query condition scopes
}

// NewRepository creates a new Repository instance. Model T must have been
// registered via RegisterSchema[T](), otherwise LoadSchema panics.
func NewRepository[T any](session *Session) *Repository[T] {
	return &Repository[T]{
		session: session,
		schema:  LoadSchema[T](),
		scopes:  make([]clause.Expression, 0),
	}
}

// Where returns a new Repository instance with appended conditions.
// The original instance is not modified.
func (r *Repository[T]) Where(conds ...clause.Expression) *Repository[T] {
	newRepo := *r
	newRepo.scopes = append(newRepo.scopes, conds...)
	return &newRepo
}

// Create inserts a new record into the database. If the schema declares an
// auto-increment primary key, the assigned id is written back onto the model
// before Create returns. Inside a transaction this happens before commit,
// matching flush-then-commit session semantics.
func (r *Repository[T]) Create(ctx context.Context, model *T) error {
	cols, vals := r.schema.InsertRow(model)

	builder := sq.Insert(r.schema.TableName()).
		Columns(cols...).
		Values(vals...).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat())

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.session.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if r.schema.AutoIncrement() {
		id, err := result.LastInsertId()
		if err == nil {
			r.schema.SetPK(model, id)
		}
	}

	return nil
}

// BatchCreate inserts multiple records in a single SQL statement.
// Auto-increment ids are not backfilled; databases do not report them for
// multi-row inserts.
func (r *Repository[T]) BatchCreate(ctx context.Context, models []*T) error {
	if len(models) == 0 {
		return nil
	}

	builder := sq.Insert(r.schema.TableName()).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat())

	for i, model := range models {
		cols, vals := r.schema.InsertRow(model)
		if i == 0 {
			builder = builder.Columns(cols...)
		}
		builder = builder.Values(vals...)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.session.Exec(ctx, query, args...)
	return err
}

// Update updates a record located by the model's primary key, writing all
// columns in the schema's UpdateMap. Scope conditions set via Where are
// combined with the primary key condition.
func (r *Repository[T]) Update(ctx context.Context, model *T) error {
	setMap := r.schema.UpdateMap(model)
	pk := r.schema.PK(model)

	builder := sq.Update(r.schema.TableName()).
		SetMap(setMap).
		Where(sq.Eq{pk.Column.Name: pk.Value})

	for _, scope := range r.scopes {
		sql, args, err := scope.Build()
		if err != nil {
			return err
		}
		builder = builder.Where(sq.Expr(sql, args...))
	}

	builder = builder.PlaceholderFormat(r.session.dialect.PlaceholderFormat())

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.session.Exec(ctx, query, args...)
	return err
}

// Delete deletes a record by primary key.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	pkMeta := r.schema.PK(nil)

	builder := sq.Delete(r.schema.TableName()).
		Where(sq.Eq{pkMeta.Column.Name: id})

	for _, scope := range r.scopes {
		sql, args, err := scope.Build()
		if err != nil {
			return err
		}
		builder = builder.Where(sq.Expr(sql, args...))
	}

	builder = builder.PlaceholderFormat(r.session.dialect.PlaceholderFormat())

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.session.Exec(ctx, query, args...)
	return err
}

// Query returns a QueryBuilder for building queries against model T.
func (r *Repository[T]) Query() *QueryBuilder[T] {
	return Query[T](r.session)
}

// FindOne queries a single record by primary key. Returns ErrNotFound if no
// record matches.
func (r *Repository[T]) FindOne(ctx context.Context, id any) (*T, error) {
	pkMeta := r.schema.PK(nil)
	query := r.Query().Where(clause.Eq{Column: pkMeta.Column, Value: id})

	for _, scope := range r.scopes {
		query = query.Where(scope)
	}
	return query.First(ctx)
}

// CreateTable creates the schema's table on the session.
func (r *Repository[T]) CreateTable(ctx context.Context) error {
	table := r.schema.Table()
	if table == nil {
		return fmt.Errorf("sqltour: schema for %s declares no table metadata", r.schema.TableName())
	}
	return table.Create(ctx, r.session)
}

// DropTable drops the schema's table from the session.
func (r *Repository[T]) DropTable(ctx context.Context) error {
	table := r.schema.Table()
	if table == nil {
		return fmt.Errorf("sqltour: schema for %s declares no table metadata", r.schema.TableName())
	}
	return table.Drop(ctx, r.session)
}

package tour

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/rowanlith/sqltour"
)

// UserTable is the declarative metadata for the tour's user table: an
// auto-assigned integer id, a text name and a timestamp date of birth.
// The builder and mapper stages both create and drop the table through it.
var UserTable = sqltour.NewTable("user",
	sqltour.Column{Name: "id", Type: sqltour.Integer, PrimaryKey: true, AutoIncrement: true},
	sqltour.Column{Name: "name", Type: sqltour.Text},
	sqltour.Column{Name: "dob", Type: sqltour.DateTime},
)

// Builder is the second stage: statements constructed programmatically with
// squirrel against the declarative table metadata, executed through an
// instrumented session.
type Builder struct{}

func (Builder) Name() string { return "builder" }

func (Builder) Description() string {
	return "statements built with squirrel over table metadata"
}

type builderRow struct {
	ID   int64     `db:"id"`
	Name string    `db:"name"`
	DOB  time.Time `db:"dob"`
}

func (Builder) Run(ctx context.Context, env *Env) error {
	db, sess, err := openSession(env)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := UserTable.Create(ctx, sess); err != nil {
		return err
	}

	insert := sq.Insert(UserTable.Name).
		Columns("name", "dob").
		Values("Alice Almeron", mustTime("2000-12-13T14:00:30+05:30")).
		Values("Bob Baker", mustTime("2000-04-23T16:34:53+05:30")).
		PlaceholderFormat(sess.Dialect().PlaceholderFormat())

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := sess.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	sel := sq.Select(UserTable.ColumnNames()...).
		From(UserTable.Name).
		Where(sq.Lt{"id": 1000}).
		PlaceholderFormat(sess.Dialect().PlaceholderFormat())

	query, args, err = sel.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}

	var users []builderRow
	if err := sess.Select(ctx, &users, query, args...); err != nil {
		return fmt.Errorf("select users: %w", err)
	}

	for _, u := range users {
		env.Logger.Info("user row",
			zap.Int64("id", u.ID),
			zap.String("name", u.Name),
			zap.Time("dob", u.DOB),
		)
	}

	return UserTable.Drop(ctx, sess)
}

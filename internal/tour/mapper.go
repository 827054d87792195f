package tour

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rowanlith/sqltour"
	"github.com/rowanlith/sqltour/field"
)

// User is the model mapped by the toolkit's Schema/Repository layer.
type User struct {
	ID   int64     `db:"id"`
	Name string    `db:"name"`
	DOB  time.Time `db:"dob"`
}

func (User) TableName() string { return "user" }

func (u *User) String() string {
	return fmt.Sprintf("User(id=%d, name=%s)", u.ID, u.Name)
}

// UserFields exposes typed column references for query expressions.
var UserFields = struct {
	ID   field.Number[int64]
	Name field.String
	DOB  field.Time
}{
	ID:   field.Number[int64]{}.WithColumn("id"),
	Name: field.String{}.WithColumn("name"),
	DOB:  field.Time{}.WithColumn("dob"),
}

// userSchema is the declarative mapping between User and the user table.
type userSchema struct{}

func (userSchema) TableName() string     { return "user" }
func (userSchema) Table() *sqltour.Table { return UserTable }

func (userSchema) SelectColumns() []string {
	return []string{"id", "name", "dob"}
}

func (userSchema) InsertRow(u *User) ([]string, []any) {
	var cols []string
	var vals []any
	if u.ID != 0 {
		cols = append(cols, "id")
		vals = append(vals, u.ID)
	}
	cols = append(cols, "name", "dob")
	vals = append(vals, u.Name, u.DOB)
	return cols, vals
}

func (userSchema) UpdateMap(u *User) map[string]any {
	return map[string]any{
		"name": u.Name,
		"dob":  u.DOB,
	}
}

func (userSchema) PK(u *User) sqltour.PK {
	var val any
	if u != nil {
		val = u.ID
	}
	return sqltour.PK{Column: UserFields.ID.Column(), Value: val}
}

func (userSchema) SetPK(u *User, val int64) { u.ID = val }
func (userSchema) AutoIncrement() bool      { return true }

func init() {
	sqltour.RegisterSchema[User](userSchema{})
}

// Mapper is the third stage: the toolkit's Schema/Repository layer inside a
// single transaction. The first insert's id is backfilled before commit,
// which is the flush-then-commit behavior a session-style ORM gives you.
type Mapper struct{}

func (Mapper) Name() string { return "mapper" }

func (Mapper) Description() string {
	return "schema-mapped repository inside one transaction"
}

func (Mapper) Run(ctx context.Context, env *Env) error {
	db, sess, err := openSession(env)
	if err != nil {
		return err
	}
	defer db.Close()

	return sess.Transaction(ctx, func(tx *sqltour.Session) error {
		repo := sqltour.NewRepository[User](tx)

		if err := repo.CreateTable(ctx); err != nil {
			return err
		}

		alice := &User{
			Name: "Alice Almeron",
			DOB:  mustTime("1999-11-30T14:00:39.293200+05:30"),
		}
		if err := repo.Create(ctx, alice); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		// The id is already assigned here, before the commit below.
		env.Logger.Info("user flushed", zap.Int64("id", alice.ID), zap.String("name", alice.Name))

		bob := &User{
			Name: "Bob Baker",
			DOB:  mustTime("2001-04-01T03:40:02+05:30"),
		}
		if err := repo.Create(ctx, bob); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		users, err := repo.Query().OrderBy(UserFields.ID.Asc()).Find(ctx)
		if err != nil {
			return fmt.Errorf("query users: %w", err)
		}
		for _, u := range users {
			env.Logger.Info("user row",
				zap.String("user", u.String()),
				zap.Int64("id", u.ID),
				zap.String("name", u.Name),
				zap.Time("dob", u.DOB),
			)
		}

		return repo.DropTable(ctx)
	})
}

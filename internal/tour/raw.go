package tour

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// RawSQL is the first stage: textual SQL statements executed as-is, with
// named bind parameters for the insert and untyped row access on the way
// back out.
type RawSQL struct{}

func (RawSQL) Name() string { return "raw" }

func (RawSQL) Description() string {
	return "textual SQL with named bind parameters"
}

func (RawSQL) Run(ctx context.Context, env *Env) error {
	db, err := sqlx.Open("sqlite3", env.dsn())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `-- create table user
CREATE TABLE user (
	id INTEGER PRIMARY KEY,
	name TEXT,
	dob DATETIME
)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if _, err := db.NamedExecContext(ctx, `-- add user
INSERT INTO user (name, dob)
VALUES (:name, :dob)`, map[string]any{
		"name": "Alice Almeron",
		"dob":  mustTime("2000-01-01T13:59:00.000+05:30"),
	}); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	rows, err := db.QueryxContext(ctx, `-- get all users
SELECT u.id, u.name, u.dob
FROM user u`)
	if err != nil {
		return fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("read columns: %w", err)
	}

	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		// Same row, accessed by position and by column name.
		byPosition := make([]any, len(cols))
		for i, col := range cols {
			byPosition[i] = row[col]
		}

		env.Logger.Info("user row",
			zap.Any("by_position", byPosition),
			zap.Any("id", row["id"]),
			zap.Any("name", row["name"]),
			zap.Any("dob", row["dob"]),
		)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DROP TABLE user`); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	return nil
}

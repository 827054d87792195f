package sqltour_test

import (
	"context"
	"testing"

	"github.com/rowanlith/sqltour"
)

func TestTableCreateSQL(t *testing.T) {
	table := sqltour.NewTable("user",
		sqltour.Column{Name: "id", Type: sqltour.Integer, PrimaryKey: true, AutoIncrement: true},
		sqltour.Column{Name: "name", Type: sqltour.Text},
		sqltour.Column{Name: "dob", Type: sqltour.DateTime},
	)

	t.Run("SQLite", func(t *testing.T) {
		want := "CREATE TABLE user (\n" +
			"\tid INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
			"\tname TEXT,\n" +
			"\tdob DATETIME\n" +
			")"
		if got := table.CreateSQL(sqltour.SQLite); got != want {
			t.Errorf("CreateSQL() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("PostgreSQL", func(t *testing.T) {
		want := "CREATE TABLE user (\n" +
			"\tid BIGSERIAL PRIMARY KEY,\n" +
			"\tname TEXT,\n" +
			"\tdob TIMESTAMPTZ\n" +
			")"
		if got := table.CreateSQL(sqltour.PostgreSQL); got != want {
			t.Errorf("CreateSQL() =\n%s\nwant\n%s", got, want)
		}
	})
}

func TestTableCreateSQLConstraints(t *testing.T) {
	table := sqltour.NewTable("tag",
		sqltour.Column{Name: "code", Type: sqltour.Text, PrimaryKey: true},
		sqltour.Column{Name: "label", Type: sqltour.Text, NotNull: true},
	)

	want := "CREATE TABLE tag (\n" +
		"\tcode TEXT PRIMARY KEY,\n" +
		"\tlabel TEXT NOT NULL\n" +
		")"
	if got := table.CreateSQL(sqltour.SQLite); got != want {
		t.Errorf("CreateSQL() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableDropSQL(t *testing.T) {
	table := sqltour.NewTable("user")
	if got := table.DropSQL(); got != "DROP TABLE user" {
		t.Errorf("DropSQL() = %q", got)
	}
}

func TestTableColumnNames(t *testing.T) {
	table := sqltour.NewTable("user",
		sqltour.Column{Name: "id", Type: sqltour.Integer},
		sqltour.Column{Name: "name", Type: sqltour.Text},
	)

	names := table.ColumnNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Errorf("ColumnNames() = %v", names)
	}
}

func TestTableCreateAndDrop(t *testing.T) {
	db, session := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	table := sqltour.NewTable("scratch",
		sqltour.Column{Name: "id", Type: sqltour.Integer, PrimaryKey: true, AutoIncrement: true},
		sqltour.Column{Name: "note", Type: sqltour.Text},
	)

	if err := table.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := session.Exec(ctx, "INSERT INTO scratch (note) VALUES (?)", "hello"); err != nil {
		t.Fatalf("Insert into created table failed: %v", err)
	}
	if err := table.Drop(ctx, session); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	// Dropping twice should fail: the table is gone.
	if err := table.Drop(ctx, session); err == nil {
		t.Error("Expected error dropping a missing table")
	}
}

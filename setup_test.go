package sqltour_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rowanlith/sqltour"
	"github.com/rowanlith/sqltour/clause"
	"github.com/rowanlith/sqltour/field"
)

// Account is the model shared by the package tests.
type Account struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (Account) TableName() string { return "accounts" }

var accountTable = sqltour.NewTable("accounts",
	sqltour.Column{Name: "id", Type: sqltour.Integer, PrimaryKey: true, AutoIncrement: true},
	sqltour.Column{Name: "username", Type: sqltour.Text, NotNull: true},
	sqltour.Column{Name: "email", Type: sqltour.Text},
	sqltour.Column{Name: "created_at", Type: sqltour.DateTime},
)

var accountFields = struct {
	ID        field.Number[int64]
	Username  field.String
	Email     field.String
	CreatedAt field.Time
}{
	ID:        field.Number[int64]{}.WithColumn("id"),
	Username:  field.String{}.WithColumn("username"),
	Email:     field.String{}.WithColumn("email"),
	CreatedAt: field.Time{}.WithColumn("created_at"),
}

type accountSchema struct{}

func (accountSchema) TableName() string     { return "accounts" }
func (accountSchema) Table() *sqltour.Table { return accountTable }

func (accountSchema) SelectColumns() []string {
	return []string{"id", "username", "email", "created_at"}
}

func (accountSchema) InsertRow(m *Account) ([]string, []any) {
	if m.ID != 0 {
		return []string{"id", "username", "email", "created_at"},
			[]any{m.ID, m.Username, m.Email, m.CreatedAt}
	}
	return []string{"username", "email", "created_at"},
		[]any{m.Username, m.Email, m.CreatedAt}
}

func (accountSchema) UpdateMap(m *Account) map[string]any {
	return map[string]any{
		"username": m.Username,
		"email":    m.Email,
	}
}

func (accountSchema) PK(m *Account) sqltour.PK {
	var val any
	if m != nil {
		val = m.ID
	}
	return sqltour.PK{Column: clause.Column{Name: "id"}, Value: val}
}

func (accountSchema) SetPK(m *Account, val int64) { m.ID = val }
func (accountSchema) AutoIncrement() bool         { return true }

func init() {
	sqltour.RegisterSchema[Account](accountSchema{})
}

func setupTestDB(t *testing.T) (*sql.DB, *sqltour.Session) {
	t.Helper()

	driver := os.Getenv("TEST_DRIVER")
	dsn := os.Getenv("TEST_DSN")

	if driver == "" {
		driver = "sqlite3"
		dsn = ":memory:"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if driver == "sqlite3" && dsn == ":memory:" {
		// Each pool connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	var dialect sqltour.Dialect
	switch driver {
	case "mysql":
		dialect = &sqltour.MySQLDialect{}
	case "postgres":
		dialect = &sqltour.PostgreSQLDialect{}
	default:
		dialect = &sqltour.SQLiteDialect{}
	}

	session := sqltour.NewSession(db, dialect)
	return db, session
}

// setupAccountDB opens a test database with the accounts table created.
func setupAccountDB(t *testing.T) (*sql.DB, *sqltour.Session) {
	t.Helper()

	db, session := setupTestDB(t)
	if err := accountTable.Create(context.Background(), session); err != nil {
		db.Close()
		t.Fatalf("Failed to create accounts table: %v", err)
	}
	return db, session
}

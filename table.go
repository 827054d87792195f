package sqltour

import (
	"context"
	"fmt"
	"strings"
)

// Column describes one column of a Table.
type Column struct {
	Name          string
	Type          ColumnType
	PrimaryKey    bool
	AutoIncrement bool
	NotNull       bool
}

// Table is declarative table metadata. It renders its own CREATE TABLE and
// DROP TABLE statements for a dialect and executes them through a Session,
// so callers describe the table once and never hand-write DDL.
type Table struct {
	Name    string
	Columns []Column
}

// NewTable builds table metadata from column descriptions.
func NewTable(name string, cols ...Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL renders the CREATE TABLE statement for the given dialect.
func (t *Table) CreateSQL(d Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
	for i, c := range t.Columns {
		b.WriteString("\t")
		b.WriteString(c.Name)
		b.WriteString(" ")
		if c.PrimaryKey && c.AutoIncrement {
			b.WriteString(d.AutoIncrementPK())
		} else {
			b.WriteString(d.ColumnTypeSQL(c.Type))
			if c.PrimaryKey {
				b.WriteString(" PRIMARY KEY")
			}
		}
		if c.NotNull {
			b.WriteString(" NOT NULL")
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// DropSQL renders the DROP TABLE statement.
func (t *Table) DropSQL() string {
	return "DROP TABLE " + t.Name
}

// Create executes the CREATE TABLE statement on the session.
func (t *Table) Create(ctx context.Context, s *Session) error {
	if _, err := s.Exec(ctx, t.CreateSQL(s.Dialect())); err != nil {
		return fmt.Errorf("sqltour: create table %s: %w", t.Name, err)
	}
	return nil
}

// Drop executes the DROP TABLE statement on the session.
func (t *Table) Drop(ctx context.Context, s *Session) error {
	if _, err := s.Exec(ctx, t.DropSQL()); err != nil {
		return fmt.Errorf("sqltour: drop table %s: %w", t.Name, err)
	}
	return nil
}

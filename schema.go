package sqltour

import (
	"fmt"
	"reflect"

	"github.com/rowanlith/sqltour/clause"
)

type PK = clause.Eq

// Schema defines how to map a model to a table and back. It is the
// declarative mapping for the toolkit's ORM layer: the table metadata, the
// columns to read, the values to write, and the primary key contract.
type Schema[T any] interface {
	// Table Metadata
	TableName() string
	Table() *Table

	// Read Operations
	SelectColumns() []string

	// Write Operations
	InsertRow(*T) ([]string, []any)

	// Update Operations
	UpdateMap(*T) map[string]any

	// Primary Key
	PK(*T) PK
	SetPK(m *T, val int64)
	AutoIncrement() bool
}

var schemas = make(map[reflect.Type]any)

func RegisterSchema[T any](schema Schema[T]) {
	var t T
	typ := reflect.TypeOf(t)
	schemas[typ] = schema
}

func LoadSchema[T any]() Schema[T] {
	var t T
	typ := reflect.TypeOf(t)
	if s, ok := schemas[typ]; ok {
		return s.(Schema[T])
	}
	panic(fmt.Sprintf("sqltour: schema not registered for type %v", typ))
}

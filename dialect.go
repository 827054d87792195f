// Package sqltour is a small relational access toolkit built around
// database/sql, squirrel and sqlx. It provides the session, dialect,
// table-metadata and mapping layers exercised by the staged tour in
// internal/tour.
//
// This file implements the database dialect abstraction. A Dialect knows the
// driver name, the placeholder format squirrel should emit, and how column
// types and auto-increment primary keys are spelled in DDL. The tour creates
// and drops its table at every abstraction level, so DDL rendering is part of
// the dialect contract here.
package sqltour

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var (
	SQLite     Dialect = &SQLiteDialect{}
	MySQL      Dialect = &MySQLDialect{}
	PostgreSQL Dialect = &PostgreSQLDialect{}
)

// ColumnType is the portable column type used by Table metadata.
// Dialects translate it to their native type name.
type ColumnType int

const (
	Integer ColumnType = iota
	Text
	DateTime
	Real
)

// Dialect abstracts database-specific SQL features.
//
// Main differences handled:
//   - Placeholder format: MySQL/SQLite use ?, PostgreSQL uses $1, $2
//   - DDL type names: DATETIME vs TIMESTAMPTZ, and so on
//   - Auto-increment primary key spelling
type Dialect interface {
	// Name returns the driver name ("sqlite3", "mysql", "postgres").
	// It is also used as the sqlx bind type and in log attributes.
	Name() string

	// PlaceholderFormat returns the placeholder format squirrel uses to
	// generate parameterized statements for this database.
	PlaceholderFormat() sq.PlaceholderFormat

	// ColumnTypeSQL returns the native DDL type name for a portable
	// column type.
	ColumnTypeSQL(t ColumnType) string

	// AutoIncrementPK returns the full column suffix (type plus
	// constraint) for an auto-assigned integer primary key, e.g.
	// "INTEGER PRIMARY KEY AUTOINCREMENT" on SQLite.
	AutoIncrementPK() string
}

// SQLiteDialect implements the SQLite dialect. It is the dialect the tour
// runs on and the one used throughout the tests.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite3" }

func (d *SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *SQLiteDialect) ColumnTypeSQL(t ColumnType) string {
	switch t {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case DateTime:
		return "DATETIME"
	case Real:
		return "REAL"
	}
	panic(fmt.Sprintf("sqltour: unknown column type %d", t))
}

func (d *SQLiteDialect) AutoIncrementPK() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// MySQLDialect implements the MySQL dialect.
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string { return "mysql" }

func (d *MySQLDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *MySQLDialect) ColumnTypeSQL(t ColumnType) string {
	switch t {
	case Integer:
		return "BIGINT"
	case Text:
		return "TEXT"
	case DateTime:
		return "DATETIME"
	case Real:
		return "DOUBLE"
	}
	panic(fmt.Sprintf("sqltour: unknown column type %d", t))
}

func (d *MySQLDialect) AutoIncrementPK() string {
	return "BIGINT PRIMARY KEY AUTO_INCREMENT"
}

// PostgreSQLDialect implements the PostgreSQL dialect.
type PostgreSQLDialect struct{}

func (d *PostgreSQLDialect) Name() string { return "postgres" }

func (d *PostgreSQLDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

func (d *PostgreSQLDialect) ColumnTypeSQL(t ColumnType) string {
	switch t {
	case Integer:
		return "BIGINT"
	case Text:
		return "TEXT"
	case DateTime:
		return "TIMESTAMPTZ"
	case Real:
		return "DOUBLE PRECISION"
	}
	panic(fmt.Sprintf("sqltour: unknown column type %d", t))
}

func (d *PostgreSQLDialect) AutoIncrementPK() string {
	return "BIGSERIAL PRIMARY KEY"
}

package sqltour

import "github.com/rowanlith/sqltour/clause"

// ResolveColumnNames extracts column names from a slice of types implementing
// clause.Columnar (field.String, field.Number, clause.Column, ...).
func ResolveColumnNames(args []clause.Columnar) []string {
	if len(args) == 0 {
		return nil
	}

	cols := make([]string, len(args))
	for i, arg := range args {
		cols[i] = arg.ColumnName()
	}
	return cols
}

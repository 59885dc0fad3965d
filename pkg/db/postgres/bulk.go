package postgres

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// MaxBindParams is the PostgreSQL limit on bind parameters in a single statement.
const MaxBindParams = 65535

// MaxRowsPerStatement returns how many rows of the given width fit in one statement.
func MaxRowsPerStatement(columns int) int {
	if columns <= 0 {
		return 0
	}
	return MaxBindParams / columns
}

// InsertValues builds a multi-row INSERT for rows rows of columns, numbering the
// placeholders row by row, followed by suffix (e.g. a RETURNING clause).
func InsertValues(table string, columns []string, rows int, suffix string) string {
	var b strings.Builder

	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col}.Sanitize())
	}
	b.WriteString(") VALUES ")

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
		}
		b.WriteByte(')')
	}

	if suffix != "" {
		b.WriteByte(' ')
		b.WriteString(suffix)
	}
	return b.String()
}

package seeder

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// BuildInsert renders a multi-row INSERT with every value inlined as a
// literal. Each of the n rows is freshly generated. n must be at least 1.
func BuildInsert(t *Table, n int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(t.QualifiedName())
	b.WriteString(" (")
	b.WriteString(strings.Join(t.Names(), ", "))
	b.WriteString(") VALUES ")

	literals := make([]string, len(t.columns))
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",\n")
		}
		for j, v := range t.Row() {
			literals[j] = v.SQL()
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(literals, ", "))
		b.WriteByte(')')
	}

	return b.String()
}

// BuildInsertArgs renders the same statement shape as BuildInsert but with
// placeholders in the given format, returning the bound arguments row by row.
func BuildInsertArgs(t *Table, n int, format squirrel.PlaceholderFormat) (string, []any, error) {
	if format == nil {
		format = squirrel.Question
	}

	q := squirrel.Insert(t.QualifiedName()).
		Columns(t.Names()...).
		PlaceholderFormat(format)

	for i := 0; i < n; i++ {
		row := t.Row()
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v.Arg()
		}
		q = q.Values(args...)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build insert for %s: %w", t.QualifiedName(), err)
	}
	return query, args, nil
}

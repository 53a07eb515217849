package seeder

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNoColumns         = errors.New("table has no columns")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrDuplicateColumn   = errors.New("duplicate column")
)

// validIdentifier validates SQL identifiers (schema/table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether name can be used unquoted as a schema,
// table or column name.
func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// Schema is an optional namespace for a table. The zero value means the
// table name is used unqualified.
type Schema string

const NoSchema Schema = ""

func (s Schema) Name() (string, bool) {
	if s == NoSchema {
		return "", false
	}
	return string(s), true
}

// Column pairs a column name with the generator that fills it.
type Column struct {
	Name string
	Gen  Generator
}

func Col(name string, gen Generator) Column {
	return Column{Name: name, Gen: gen}
}

// Table is immutable metadata: a name, an optional schema and an ordered,
// non-empty column set. The column order is used for both the column clause
// and every row tuple.
type Table struct {
	schema  Schema
	name    string
	columns []Column
}

func NewTable(schema Schema, name string, cols ...Column) (*Table, error) {
	if !IsValidIdentifier(name) {
		return nil, fmt.Errorf("table name %q: %w", name, ErrInvalidIdentifier)
	}
	if s, ok := schema.Name(); ok && !IsValidIdentifier(s) {
		return nil, fmt.Errorf("schema name %q: %w", s, ErrInvalidIdentifier)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s: %w", name, ErrNoColumns)
	}

	seen := make(map[string]bool, len(cols))
	columns := make([]Column, len(cols))
	for i, col := range cols {
		if !IsValidIdentifier(col.Name) {
			return nil, fmt.Errorf("column name %q in table %s: %w", col.Name, name, ErrInvalidIdentifier)
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("column %s in table %s: %w", col.Name, name, ErrDuplicateColumn)
		}
		if col.Gen == nil {
			return nil, fmt.Errorf("column %s in table %s has no generator", col.Name, name)
		}
		seen[col.Name] = true
		columns[i] = col
	}

	return &Table{schema: schema, name: name, columns: columns}, nil
}

func (t *Table) Name() string   { return t.name }
func (t *Table) Schema() Schema { return t.schema }

// QualifiedName returns schema.table, or just table when there is no schema.
func (t *Table) QualifiedName() string {
	if s, ok := t.schema.Name(); ok {
		return s + "." + t.name
	}
	return t.name
}

// Columns returns a copy of the ordered column set.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Row invokes every column generator once, in column order.
func (t *Table) Row() []Value {
	row := make([]Value, len(t.columns))
	for i, col := range t.columns {
		v := col.Gen()
		if v == nil {
			v = Null
		}
		row[i] = v
	}
	return row
}

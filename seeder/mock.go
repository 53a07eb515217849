package seeder

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

var ErrInvalidCount = errors.New("repetition count must be at least 1")

// Mock binds a table to a repetition count. It holds no rows: every call to
// Statement or SQL generates count fresh rows.
type Mock struct {
	table       *Table
	count       int
	placeholder squirrel.PlaceholderFormat
}

type MockOption func(*Mock)

// WithPlaceholders switches the mock to bound parameters: values are passed
// as statement arguments instead of being inlined.
func WithPlaceholders(format squirrel.PlaceholderFormat) MockOption {
	return func(m *Mock) {
		m.placeholder = format
	}
}

func NewMock(t *Table, count int, opts ...MockOption) (*Mock, error) {
	if t == nil {
		return nil, errors.New("mock requires a table")
	}
	if count < 1 {
		return nil, fmt.Errorf("mock for %s with count %d: %w", t.QualifiedName(), count, ErrInvalidCount)
	}

	m := &Mock{table: t, count: count}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MustMock is like NewMock but panics on an invalid table or count.
func MustMock(t *Table, count int, opts ...MockOption) *Mock {
	m, err := NewMock(t, count, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Define builds the table and the mock in one step from a declarative
// description: optional schema, table name, repetition count and the
// ordered (column, generator) pairs.
func Define(schema Schema, table string, count int, cols ...Column) (*Mock, error) {
	if count < 1 {
		return nil, fmt.Errorf("mock for %s with count %d: %w", table, count, ErrInvalidCount)
	}
	t, err := NewTable(schema, table, cols...)
	if err != nil {
		return nil, err
	}
	return NewMock(t, count)
}

func MustDefine(schema Schema, table string, count int, cols ...Column) *Mock {
	m, err := Define(schema, table, count, cols...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mock) Table() *Table { return m.table }
func (m *Mock) Count() int    { return m.count }

// Bound reports whether the mock renders placeholders rather than literals.
func (m *Mock) Bound() bool { return m.placeholder != nil }

// SQL renders the literal INSERT statement with freshly generated rows.
func (m *Mock) SQL() string {
	return BuildInsert(m.table, m.count)
}

// Statement renders the statement the executors run.
func (m *Mock) Statement() (Statement, error) {
	if m.placeholder == nil {
		return Statement{SQL: m.SQL()}, nil
	}
	query, args, err := BuildInsertArgs(m.table, m.count, m.placeholder)
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: query, Args: args}, nil
}

func (m *Mock) String() string {
	return fmt.Sprintf("%s(%d)", m.table.QualifiedName(), m.count)
}

package seeder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
)

// tagged returns a generator whose values carry the column name and a
// running counter, so positions can be checked in the rendered SQL.
func tagged(col string) Generator {
	n := 0
	return func() Value {
		n++
		return Text(fmt.Sprintf("%s-%d", col, n))
	}
}

func usersTable(t *testing.T, schema Schema) *Table {
	t.Helper()
	table, err := NewTable(schema, "users",
		Col("id", tagged("id")),
		Col("username", tagged("username")),
		Col("email", tagged("email")),
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table
}

// splitTuples returns the row tuples of a literal INSERT statement.
func splitTuples(t *testing.T, query string) []string {
	t.Helper()
	idx := strings.Index(query, " VALUES ")
	if idx < 0 {
		t.Fatalf("no VALUES clause in %q", query)
	}
	return strings.Split(query[idx+len(" VALUES "):], ",\n")
}

func TestBuildInsertWithSchema(t *testing.T) {
	table := usersTable(t, "auth")
	query := BuildInsert(table, 5)

	prefix := "INSERT INTO auth.users (id, username, email) VALUES "
	if !strings.HasPrefix(query, prefix) {
		t.Fatalf("Expected prefix %q, got %q", prefix, query)
	}
	if strings.HasSuffix(query, ",") || strings.HasSuffix(query, ";") {
		t.Errorf("Statement should end with a closing paren, got %q", query)
	}

	tuples := splitTuples(t, query)
	if len(tuples) != 5 {
		t.Fatalf("Expected 5 row tuples, got %d", len(tuples))
	}
	for i, tuple := range tuples {
		if !strings.HasPrefix(tuple, "(") || !strings.HasSuffix(tuple, ")") {
			t.Errorf("Tuple %d is not parenthesized: %q", i, tuple)
		}
		literals := strings.Split(strings.Trim(tuple, "()"), ", ")
		if len(literals) != 3 {
			t.Errorf("Tuple %d has %d literals, expected 3", i, len(literals))
		}
	}
}

func TestBuildInsertWithoutSchema(t *testing.T) {
	table := usersTable(t, NoSchema)
	query := BuildInsert(table, 1)

	if !strings.HasPrefix(query, "INSERT INTO users (") {
		t.Errorf("Expected unqualified table name, got %q", query)
	}
	if strings.Contains(query, ".users") {
		t.Errorf("Unexpected schema qualifier in %q", query)
	}
	if tuples := splitTuples(t, query); len(tuples) != 1 {
		t.Errorf("Expected 1 tuple, got %d", len(tuples))
	}
}

func TestBuildInsertColumnOrderMatchesValues(t *testing.T) {
	cols := []string{"email", "id", "username", "created_at"}
	var columns []Column
	for _, c := range cols {
		columns = append(columns, Col(c, tagged(c)))
	}
	table, err := NewTable("app", "accounts", columns...)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	query := BuildInsert(table, 7)
	wantClause := "(" + strings.Join(cols, ", ") + ")"
	if !strings.Contains(query, wantClause) {
		t.Fatalf("Column clause %q missing from %q", wantClause, query)
	}

	for i, tuple := range splitTuples(t, query) {
		literals := strings.Split(strings.Trim(tuple, "()"), ", ")
		for j, lit := range literals {
			want := fmt.Sprintf("'%s-%d'", cols[j], i+1)
			if lit != want {
				t.Errorf("Row %d position %d: expected %s, got %s", i, j, want, lit)
			}
		}
	}
}

func TestMockRegeneratesValues(t *testing.T) {
	m := MustMock(usersTable(t, "auth"), 3)

	first := m.SQL()
	second := m.SQL()

	if first == second {
		t.Error("Expected freshly generated values on each call")
	}

	header := func(s string) string { return s[:strings.Index(s, " VALUES ")] }
	if header(first) != header(second) {
		t.Errorf("Structure changed between calls: %q vs %q", header(first), header(second))
	}
	if len(splitTuples(t, first)) != len(splitTuples(t, second)) {
		t.Error("Row count changed between calls")
	}
}

func TestMockRejectsNonPositiveCount(t *testing.T) {
	for _, schema := range []Schema{NoSchema, "auth"} {
		for _, n := range []int{0, -1} {
			table := usersTable(t, schema)
			if _, err := NewMock(table, n); !errors.Is(err, ErrInvalidCount) {
				t.Errorf("NewMock(%q, %d): expected ErrInvalidCount, got %v", schema, n, err)
			}
			if _, err := Define(schema, "users", n, Col("id", Const(1))); !errors.Is(err, ErrInvalidCount) {
				t.Errorf("Define(%q, %d): expected ErrInvalidCount, got %v", schema, n, err)
			}
		}
	}
}

func TestMustMockPanicsOnZeroCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustMock to panic")
		}
	}()
	MustMock(usersTable(t, NoSchema), 0)
}

func TestNewTableValidation(t *testing.T) {
	gen := Const("x")
	tests := []struct {
		name   string
		schema Schema
		table  string
		cols   []Column
		want   error
	}{
		{"no columns", NoSchema, "users", nil, ErrNoColumns},
		{"bad table", NoSchema, "users; DROP TABLE x", []Column{Col("id", gen)}, ErrInvalidIdentifier},
		{"bad schema", "auth.x", "users", []Column{Col("id", gen)}, ErrInvalidIdentifier},
		{"bad column", NoSchema, "users", []Column{Col("1id", gen)}, ErrInvalidIdentifier},
		{"duplicate column", NoSchema, "users", []Column{Col("id", gen), Col("id", gen)}, ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.schema, tt.table, tt.cols...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := NewTable(NoSchema, "users", Column{Name: "id"}); err == nil {
		t.Error("Expected error for column without generator")
	}
}

func TestTableColumnsIsCopy(t *testing.T) {
	table := usersTable(t, NoSchema)
	cols := table.Columns()
	cols[0].Name = "changed"
	if table.Names()[0] != "id" {
		t.Error("Table columns were mutated through Columns()")
	}
}

func TestBuildInsertArgs(t *testing.T) {
	table, err := NewTable("auth", "users", Col("id", Const(7)), Col("name", Const("bob")))
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	query, args, err := BuildInsertArgs(table, 3, squirrel.Dollar)
	if err != nil {
		t.Fatalf("BuildInsertArgs failed: %v", err)
	}

	want := "INSERT INTO auth.users (id,name) VALUES ($1,$2),($3,$4),($5,$6)"
	if query != want {
		t.Errorf("Expected %q, got %q", want, query)
	}
	if len(args) != 6 {
		t.Fatalf("Expected 6 args, got %d", len(args))
	}
	if args[0] != int64(7) || args[1] != "bob" {
		t.Errorf("Unexpected first row args: %v", args[:2])
	}
}

func TestMockStatementModes(t *testing.T) {
	table := usersTable(t, NoSchema)

	literal, err := MustMock(table, 2).Statement()
	if err != nil {
		t.Fatalf("Statement failed: %v", err)
	}
	if len(literal.Args) != 0 {
		t.Errorf("Literal statement should carry no args, got %d", len(literal.Args))
	}

	bound, err := MustMock(table, 2, WithPlaceholders(squirrel.Question)).Statement()
	if err != nil {
		t.Fatalf("Statement failed: %v", err)
	}
	if len(bound.Args) != 6 {
		t.Errorf("Expected 6 args, got %d", len(bound.Args))
	}
	if strings.Contains(bound.SQL, "'") {
		t.Errorf("Bound statement should not inline literals: %q", bound.SQL)
	}
}

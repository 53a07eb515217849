package plan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	createTableRegex  = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["'` + "`" + `]?(?:(\w+)["'` + "`" + `]?\.["'` + "`" + `]?)?(\w+)["'` + "`" + `]?\s*\((.*?)\)\s*;`)
	fkRegex           = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s*\(["'` + "`" + `]?(\w+)["'` + "`" + `]?\)\s*REFERENCES\s+(?:["'` + "`" + `]?(\w+)["'` + "`" + `]?\.)?["'` + "`" + `]?(\w+)["'` + "`" + `]?`)
	blockCommentRegex = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	refRegex          = regexp.MustCompile(`(?i)REFERENCES\s+(?:["'` + "`" + `]?(\w+)["'` + "`" + `]?\.)?["'` + "`" + `]?(\w+)["'` + "`" + `]?`)
)

const nullablePercent = 10

type schemaColumn struct {
	name     string
	typ      string
	nullable bool
	auto     bool
	refTable string
}

// FromSchema drafts a plan from CREATE TABLE statements. Auto-increment
// keys are left to the database, foreign keys become depends_on entries and
// integer references are drawn from 1..count of the parent table. An
// unqualified reference resolves to the referencing table's schema.
func FromSchema(schemaSQL string, count int) *Plan {
	p := &Plan{}
	for _, match := range createTableRegex.FindAllStringSubmatch(removeComments(schemaSQL), -1) {
		spec := TableSpec{
			Schema: match[1],
			Table:  match[2],
			Count:  count,
		}

		cols, deps := parseTableBody(spec.Schema, spec.Table, match[3])
		spec.DependsOn = deps
		for _, col := range cols {
			if col.auto {
				continue
			}
			spec.Columns = append(spec.Columns, col.spec(count))
		}
		if len(spec.Columns) == 0 {
			continue
		}
		p.Tables = append(p.Tables, spec)
	}
	return p
}

func (c schemaColumn) spec(count int) ColumnSpec {
	cs := ColumnSpec{Name: c.name, Type: c.typ}
	if c.refTable != "" && isIntegerType(c.typ) {
		cs.Type = ""
		cs.Kind = "int_range"
		cs.Args = []string{"1", strconv.Itoa(count)}
		cs.References = c.refTable
	}
	if c.nullable && c.refTable == "" {
		cs.Nullable = nullablePercent
	}
	return cs
}

func parseTableBody(schema, tableName, body string) ([]schemaColumn, []string) {
	self := TableSpec{Schema: schema, Table: tableName}.Key()
	qualify := func(refSchema, refTable string) string {
		if refSchema == "" {
			refSchema = schema
		}
		return TableSpec{Schema: refSchema, Table: refTable}.Key()
	}

	var cols []schemaColumn
	var deps []string
	addDep := func(ref string) {
		if ref == self {
			return
		}
		for _, d := range deps {
			if d == ref {
				return
			}
		}
		deps = append(deps, ref)
	}

	fkByColumn := make(map[string]string)
	for _, line := range splitTopLevel(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineUpper := strings.ToUpper(line)

		if fkMatch := fkRegex.FindStringSubmatch(line); fkMatch != nil {
			ref := qualify(fkMatch[2], fkMatch[3])
			fkByColumn[fkMatch[1]] = ref
			addDep(ref)
			continue
		}

		// Skip constraint definitions
		if strings.HasPrefix(lineUpper, "PRIMARY") ||
			strings.HasPrefix(lineUpper, "UNIQUE") ||
			strings.HasPrefix(lineUpper, "CHECK") ||
			strings.HasPrefix(lineUpper, "CONSTRAINT") ||
			strings.HasPrefix(lineUpper, "INDEX") ||
			strings.HasPrefix(lineUpper, "KEY") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		col := schemaColumn{
			name:     strings.Trim(parts[0], "\"'`"),
			typ:      parts[1],
			nullable: !strings.Contains(lineUpper, "NOT NULL") && !strings.Contains(lineUpper, "PRIMARY KEY"),
		}
		typeUpper := strings.ToUpper(col.typ)
		col.auto = strings.Contains(typeUpper, "SERIAL") ||
			strings.Contains(lineUpper, "AUTO_INCREMENT") ||
			strings.Contains(lineUpper, "AUTOINCREMENT") ||
			strings.Contains(lineUpper, "GENERATED ")

		if refMatch := refRegex.FindStringSubmatch(line); refMatch != nil {
			col.refTable = qualify(refMatch[1], refMatch[2])
			addDep(col.refTable)
		}
		cols = append(cols, col)
	}

	for i := range cols {
		if ref, ok := fkByColumn[cols[i].name]; ok {
			cols[i].refTable = ref
		}
	}
	return cols, deps
}

// splitTopLevel splits a table body on commas outside parentheses, so
// DECIMAL(10,2) stays one column.
func splitTopLevel(body string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func isIntegerType(colType string) bool {
	return strings.Contains(strings.ToUpper(colType), "INT")
}

func removeComments(sql string) string {
	var result strings.Builder
	result.Grow(len(sql))

	start := 0
	for i := 0; i < len(sql); i++ {
		if i+1 < len(sql) && sql[i] == '-' && sql[i+1] == '-' {
			result.WriteString(sql[start:i])
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			if i < len(sql) {
				result.WriteByte('\n')
			}
			start = i + 1
		}
	}
	if start < len(sql) {
		result.WriteString(sql[start:])
	}

	return blockCommentRegex.ReplaceAllString(result.String(), "")
}

package plan

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/seedling/fake"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/Masterminds/squirrel"
	"gopkg.in/yaml.v3"
)

// Plan is a seed plan file: the tables to seed and how to fill each column.
//
//	tables:
//	  - schema: auth
//	    table: users
//	    count: 5
//	    columns:
//	      - {name: id, kind: uuid}
//	      - {name: email, kind: email}
//	      - {name: age, kind: int_range, args: ["18", "90"]}
//	      - {name: bio, type: TEXT}
type Plan struct {
	Tables []TableSpec `yaml:"tables"`
}

type TableSpec struct {
	Schema    string       `yaml:"schema,omitempty"`
	Table     string       `yaml:"table"`
	Count     int          `yaml:"count,omitempty"`
	DependsOn []string     `yaml:"depends_on,omitempty"`
	Columns   []ColumnSpec `yaml:"columns"`
}

// ColumnSpec names a generator by kind, or lets it be inferred from the
// column name and SQL type when kind is empty.
type ColumnSpec struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Args     []string `yaml:"args,omitempty"`
	Nullable int      `yaml:"nullable,omitempty"` // percent of NULLs
	// References names the parent table of an int_range key column. The
	// range upper bound follows the parent's row count for the run.
	References string `yaml:"references,omitempty"`
}

// Key identifies the table, schema-qualified when a schema is set.
func (s TableSpec) Key() string {
	if s.Schema != "" {
		return s.Schema + "." + s.Table
	}
	return s.Table
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed plan %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse seed plan: %w", err)
	}
	if len(p.Tables) == 0 {
		return nil, fmt.Errorf("seed plan has no tables")
	}
	return &p, nil
}

func (p *Plan) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Options controls how a plan becomes mocks.
type Options struct {
	DefaultCount  int
	CountOverride int
	Only          []string
	// Placeholder, when set, renders bound statements instead of literals.
	Placeholder squirrel.PlaceholderFormat
}

// Mocks orders the plan's tables so dependencies come first, applies the
// filters in opts and builds one mock per table.
func (p *Plan) Mocks(opts Options) ([]*seeder.Mock, error) {
	byKey := make(map[string]TableSpec, len(p.Tables))
	counts := make(map[string]int, len(p.Tables))
	graph := NewGraph()
	for _, spec := range p.Tables {
		key := spec.Key()
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("table %s appears more than once in the seed plan", key)
		}
		byKey[key] = spec
		counts[key] = spec.count(opts)
		graph.Add(key, spec.DependsOn...)
	}

	order, err := graph.Order()
	if err != nil {
		return nil, err
	}

	only := make(map[string]bool, len(opts.Only))
	for _, name := range opts.Only {
		only[strings.TrimSpace(name)] = true
	}

	var mocks []*seeder.Mock
	for _, key := range order {
		spec, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("table %s is listed in depends_on but not defined in the seed plan", key)
		}
		if len(only) > 0 && !only[key] && !only[spec.Table] {
			continue
		}

		m, err := spec.withParentCounts(counts).Mock(opts)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, m)
	}
	return mocks, nil
}

func (s TableSpec) count(opts Options) int {
	switch {
	case opts.CountOverride > 0:
		return opts.CountOverride
	case s.Count > 0:
		return s.Count
	}
	return opts.DefaultCount
}

// withParentCounts points every referencing int_range column at 1..n, where
// n is the parent's row count under the current options.
func (s TableSpec) withParentCounts(counts map[string]int) TableSpec {
	cols := make([]ColumnSpec, len(s.Columns))
	copy(cols, s.Columns)
	for i, c := range cols {
		if c.References == "" || c.Kind != "int_range" {
			continue
		}
		if n, ok := counts[c.References]; ok && n > 0 {
			cols[i].Args = []string{"1", strconv.Itoa(n)}
		}
	}
	s.Columns = cols
	return s
}

func (s TableSpec) Mock(opts Options) (*seeder.Mock, error) {
	count := s.count(opts)

	cols := make([]seeder.Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		gen, err := c.Generator()
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", s.Key(), c.Name, err)
		}
		cols = append(cols, seeder.Col(c.Name, gen))
	}

	table, err := seeder.NewTable(seeder.Schema(s.Schema), s.Table, cols...)
	if err != nil {
		return nil, err
	}

	var mockOpts []seeder.MockOption
	if opts.Placeholder != nil {
		mockOpts = append(mockOpts, seeder.WithPlaceholders(opts.Placeholder))
	}
	return seeder.NewMock(table, count, mockOpts...)
}

func (c ColumnSpec) Generator() (seeder.Generator, error) {
	var gen seeder.Generator
	if c.Kind == "" {
		gen = fake.ForColumn(c.Name, c.Type)
	} else {
		g, err := fake.Lookup(c.Kind, c.Args...)
		if err != nil {
			return nil, err
		}
		gen = g
	}
	if c.Nullable > 0 {
		gen = fake.Nullable(gen, c.Nullable)
	}
	return gen, nil
}

package plan

import "fmt"

// Graph orders tables so every table comes after the tables it depends on.
// Tables without a dependency between them keep the order they were added.
type Graph struct {
	deps  map[string][]string
	added []string
}

func NewGraph() *Graph {
	return &Graph{
		deps: make(map[string][]string),
	}
}

func (g *Graph) Add(table string, dependsOn ...string) {
	if _, ok := g.deps[table]; !ok {
		g.added = append(g.added, table)
	}
	g.deps[table] = append(g.deps[table], dependsOn...)
}

// Order returns the insertion order. Dependencies that were never added
// still appear in the result, before their first dependent.
func (g *Graph) Order() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(table string) error {
		if temp[table] {
			return fmt.Errorf("circular dependency detected involving table: %s", table)
		}
		if visited[table] {
			return nil
		}

		temp[table] = true
		for _, dep := range g.deps[table] {
			if dep != table { // Skip self-references
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[table] = false
		visited[table] = true
		order = append(order, table)
		return nil
	}

	for _, table := range g.added {
		if !visited[table] {
			if err := visit(table); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

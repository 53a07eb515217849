package fake

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/seedling/seeder"
)

var simple = map[string]seeder.Generator{
	"uuid":       UUID,
	"first_name": FirstName,
	"last_name":  LastName,
	"name":       Name,
	"username":   Username,
	"email":      Email,
	"title":      Title,
	"sentence":   Sentence,
	"word":       Word,
	"url":        URL,
	"phone":      Phone,
	"address":    Address,
	"bool":       Bool,
	"int":        Int,
	"float":      Float,
	"timestamp":  Timestamp,
	"date":       Date,
	"json":       JSON,
	"null":       func() seeder.Value { return seeder.Null },
	"now":        func() seeder.Value { return seeder.Raw("CURRENT_TIMESTAMP") },
	"default":    func() seeder.Value { return seeder.Raw("DEFAULT") },
}

// Kinds lists every generator name accepted by Lookup.
func Kinds() []string {
	kinds := []string{"sequence", "int_range", "one_of", "const"}
	for k := range simple {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Lookup resolves a generator by kind name, as used in seed plan files.
func Lookup(kind string, args ...string) (seeder.Generator, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))

	if gen, ok := simple[kind]; ok {
		if len(args) > 0 {
			return nil, fmt.Errorf("generator %s takes no arguments", kind)
		}
		return gen, nil
	}

	switch kind {
	case "sequence":
		start := int64(1)
		if len(args) > 0 {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sequence start %q: %w", args[0], err)
			}
			start = v
		}
		return Sequence(start), nil
	case "int_range":
		if len(args) != 2 {
			return nil, fmt.Errorf("int_range requires min and max, got %d arguments", len(args))
		}
		min, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid int_range min %q: %w", args[0], err)
		}
		max, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid int_range max %q: %w", args[1], err)
		}
		return IntRange(min, max), nil
	case "one_of":
		if len(args) == 0 {
			return nil, fmt.Errorf("one_of requires at least one value")
		}
		return OneOf(args...), nil
	case "const":
		if len(args) != 1 {
			return nil, fmt.Errorf("const requires exactly one value")
		}
		return seeder.Const(args[0]), nil
	}

	return nil, fmt.Errorf("unknown generator %q", kind)
}

// ForColumn picks a generator from a column's name, falling back to its SQL
// type when the name says nothing useful.
func ForColumn(colName, colType string) seeder.Generator {
	colLower := strings.ToLower(colName)

	switch {
	case strings.Contains(colLower, "email"):
		return Email
	case colLower == "username" || colLower == "user_name" || colLower == "login":
		return Username
	case strings.Contains(colLower, "name") && !strings.Contains(colLower, "file") && !strings.Contains(colLower, "user"):
		return Name
	case strings.Contains(colLower, "title"):
		return Title
	case strings.Contains(colLower, "description") || strings.Contains(colLower, "content"):
		return Sentence
	case strings.Contains(colLower, "url") || strings.Contains(colLower, "link"):
		return URL
	case strings.Contains(colLower, "phone"):
		return Phone
	case strings.Contains(colLower, "address"):
		return Address
	}

	return ForType(colType)
}

// ForType picks a generator from a SQL column type such as VARCHAR(255).
func ForType(colType string) seeder.Generator {
	typeUpper := strings.ToUpper(colType)
	if idx := strings.Index(typeUpper, "("); idx > 0 {
		typeUpper = typeUpper[:idx]
	}

	switch {
	case strings.Contains(typeUpper, "INT") || strings.Contains(typeUpper, "SERIAL"):
		return Int
	case strings.Contains(typeUpper, "BOOL"):
		return Bool
	case strings.Contains(typeUpper, "TIMESTAMP") || strings.Contains(typeUpper, "DATETIME"):
		return Timestamp
	case strings.Contains(typeUpper, "DATE"):
		return Date
	case strings.Contains(typeUpper, "DECIMAL") || strings.Contains(typeUpper, "NUMERIC") ||
		strings.Contains(typeUpper, "FLOAT") || strings.Contains(typeUpper, "DOUBLE") || strings.Contains(typeUpper, "REAL"):
		return Float
	case strings.Contains(typeUpper, "UUID"):
		return UUID
	case strings.Contains(typeUpper, "JSON"):
		return JSON
	default:
		return Word
	}
}

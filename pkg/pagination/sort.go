package pagination

import (
	"fmt"
	"strings"
)

// SortField is one entry of an ordering list such as "price,-title".
type SortField struct {
	Name string
	Desc bool
}

// ParseOrdering splits a comma-separated ordering string. A leading "-"
// sorts descending. Each name must be a key of columns, which maps it to a
// SQL column; the result is ready for ORDER BY.
func ParseOrdering(raw string, columns map[string]string) ([]string, error) {
	var clauses []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field := SortField{Name: part}
		if strings.HasPrefix(part, "-") {
			field = SortField{Name: strings.TrimPrefix(part, "-"), Desc: true}
		}
		column, ok := columns[field.Name]
		if !ok {
			return nil, fmt.Errorf("unknown ordering field %q", field.Name)
		}
		if field.Desc {
			column += " DESC"
		}
		clauses = append(clauses, column)
	}
	return clauses, nil
}

// EscapeLike escapes LIKE wildcards so user input matches literally with ESCAPE '\'.
func EscapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

package postgres

import (
	"fmt"
	"strings"

	"github.com/fastygo/crm/repository"
)

// condBuilder accumulates AND-combined SQL predicates with positional
// placeholders. Expressions use $? for each argument; placeholders are
// renumbered as conditions are appended.
type condBuilder struct {
	clauses []string
	args    []interface{}
}

func (b *condBuilder) add(expr string, args ...interface{}) {
	for _, arg := range args {
		b.args = append(b.args, arg)
		expr = strings.Replace(expr, "$?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.clauses = append(b.clauses, expr)
}

// next returns the placeholder for one more argument appended outside a
// condition (LIMIT/OFFSET).
func (b *condBuilder) next(arg interface{}) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *condBuilder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// orderBy renders an ORDER BY clause from the sort spec, mapping field names
// through columns and always appending the id column as a tiebreak.
func orderBy(fields []repository.SortField, columns map[string]string, idColumn string) string {
	var parts []string
	for _, f := range fields {
		col, ok := columns[f.Field]
		if !ok {
			continue
		}
		if f.Desc {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	parts = append(parts, idColumn)
	return " ORDER BY " + strings.Join(parts, ", ")
}

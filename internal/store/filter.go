package store

import (
	"strings"
	"time"
)

// Filter accumulates optional AND-composed predicates for listing
// queries. Column names come from the callers only; values travel as
// named parameters, never as literals.
type Filter struct {
	clauses []string
	params  map[string]any
}

func NewFilter() *Filter {
	return &Filter{params: map[string]any{}}
}

// Equal adds `column = :name` when v is not nil.
func (f *Filter) Equal(column, name string, v *int) *Filter {
	if v == nil {
		return f
	}
	f.clauses = append(f.clauses, column+" = :"+name)
	f.params[name] = *v
	return f
}

// From adds `column >= :name` when t is not nil.
func (f *Filter) From(column, name string, t *time.Time) *Filter {
	if t == nil {
		return f
	}
	f.clauses = append(f.clauses, column+" >= :"+name)
	f.params[name] = *t
	return f
}

// To adds `column <= :name` when t is not nil.
func (f *Filter) To(column, name string, t *time.Time) *Filter {
	if t == nil {
		return f
	}
	f.clauses = append(f.clauses, column+" <= :"+name)
	f.params[name] = *t
	return f
}

// Clause renders the predicates for appending after an existing WHERE
// condition. It is empty when no predicate was added.
func (f *Filter) Clause() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " AND " + strings.Join(f.clauses, " AND ")
}

// Where renders a standalone WHERE clause, empty when no predicate was
// added.
func (f *Filter) Where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// Params merges the bound values into base and returns it.
func (f *Filter) Params(base map[string]any) map[string]any {
	if base == nil {
		base = map[string]any{}
	}
	for k, v := range f.params {
		base[k] = v
	}
	return base
}

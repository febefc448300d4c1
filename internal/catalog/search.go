package catalog

// search.go builds the filtered product query as a structured predicate
// list rather than string concatenation. Each present filter appends one
// parameterized condition and pushes its bound value in the same step, so
// placeholder positions and the argument list always line up 1:1.

import (
	"fmt"
	"strings"
)

// selectProducts is the unconditional base query every filter builds on.
const selectProducts = "SELECT id, sku, name, brand, color, size, mrp, price, quantity FROM products"

// Filters is the optional-field search input. Any subset may be set;
// empty strings contribute neither a predicate nor a parameter.
type Filters struct {
	Brand    string
	Color    string
	MinPrice string
	MaxPrice string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Brand == "" && f.Color == "" && f.MinPrice == "" && f.MaxPrice == ""
}

// WhereBuilder accumulates parameterized WHERE conditions with positional
// ($1, $2, ...) placeholders. Conditions are combined with AND.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates an empty builder starting at placeholder $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// AddContains appends a case-insensitive substring condition on col.
// Empty values are skipped.
func (wb *WhereBuilder) AddContains(col, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s ILIKE $%d", col, wb.argIndex))
	wb.args = append(wb.args, "%"+value+"%")
	wb.argIndex++
}

// AddMin appends an inclusive lower-bound condition on col.
// Empty values are skipped.
func (wb *WhereBuilder) AddMin(col, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s >= $%d", col, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// AddMax appends an inclusive upper-bound condition on col.
// Empty values are skipped.
func (wb *WhereBuilder) AddMax(col, value string) {
	if value == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s <= $%d", col, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// Build returns the assembled WHERE clause (with a leading space) and the
// ordered argument list. Returns ("", nil) when no conditions were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the placeholder number the next condition would use.
// Useful when appending LIMIT/OFFSET after the WHERE clause.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// BuildSearchQuery maps a filter set to a parameterized SQL query and its
// ordered argument list. Filters are applied in a fixed order: brand,
// color, minPrice, maxPrice. The placeholder count always equals the
// argument count.
func BuildSearchQuery(f Filters) (string, []any) {
	wb := NewWhereBuilder()
	wb.AddContains("brand", f.Brand)
	wb.AddContains("color", f.Color)
	wb.AddMin("price", f.MinPrice)
	wb.AddMax("price", f.MaxPrice)

	where, args := wb.Build()
	return selectProducts + where, args
}

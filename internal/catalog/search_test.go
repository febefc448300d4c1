package catalog

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	where, args := wb.Build()
	if where != "" {
		t.Errorf("Build() where = %q, want empty", where)
	}
	if args != nil {
		t.Errorf("Build() args = %v, want nil", args)
	}
	if got := wb.NextArgIndex(); got != 1 {
		t.Errorf("NextArgIndex = %d, want 1", got)
	}
}

func TestWhereBuilder_SkipsEmptyValues(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddContains("brand", "")
	wb.AddMin("price", "")
	wb.AddMax("price", "")

	where, args := wb.Build()
	if where != "" || args != nil {
		t.Errorf("Build() = %q, %v; want empty clause", where, args)
	}
}

func TestWhereBuilder_Conditions(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddContains("brand", "Nike")
	wb.AddMin("price", "100")
	wb.AddMax("price", "500")

	where, args := wb.Build()
	want := " WHERE brand ILIKE $1 AND price >= $2 AND price <= $3"
	if where != want {
		t.Errorf("Build() where = %q, want %q", where, want)
	}
	wantArgs := []any{"%Nike%", "100", "500"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("Build() args = %v, want %v", args, wantArgs)
	}
	if got := wb.NextArgIndex(); got != 4 {
		t.Errorf("NextArgIndex = %d, want 4", got)
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   Filters
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filters:   Filters{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "brand only",
			filters:   Filters{Brand: "Nike"},
			wantWhere: " WHERE brand ILIKE $1",
			wantArgs:  []any{"%Nike%"},
		},
		{
			name:      "price range",
			filters:   Filters{MinPrice: "100", MaxPrice: "500"},
			wantWhere: " WHERE price >= $1 AND price <= $2",
			wantArgs:  []any{"100", "500"},
		},
		{
			name:      "brand and color",
			filters:   Filters{Brand: "Adidas", Color: "Black"},
			wantWhere: " WHERE brand ILIKE $1 AND color ILIKE $2",
			wantArgs:  []any{"%Adidas%", "%Black%"},
		},
		{
			name:      "all filters",
			filters:   Filters{Brand: "Puma", Color: "Red", MinPrice: "50", MaxPrice: "300"},
			wantWhere: " WHERE brand ILIKE $1 AND color ILIKE $2 AND price >= $3 AND price <= $4",
			wantArgs:  []any{"%Puma%", "%Red%", "50", "300"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := BuildSearchQuery(tt.filters)

			want := selectProducts + tt.wantWhere
			if query != want {
				t.Errorf("query = %q, want %q", query, want)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildSearchQuery_PlaceholderCountMatchesArgs(t *testing.T) {
	filterSets := []Filters{
		{},
		{Brand: "Nike"},
		{Color: "Blue"},
		{MinPrice: "10"},
		{MaxPrice: "90"},
		{Brand: "Nike", MaxPrice: "90"},
		{Brand: "Nike", Color: "Blue", MinPrice: "10", MaxPrice: "90"},
	}

	for _, f := range filterSets {
		query, args := BuildSearchQuery(f)

		placeholders := 0
		for i := 1; i <= len(args)+1; i++ {
			if strings.Contains(query, fmt.Sprintf("$%d", i)) {
				placeholders++
			}
		}
		if placeholders != len(args) {
			t.Errorf("filters %+v: %d placeholders for %d args in %q", f, placeholders, len(args), query)
		}
	}
}

func TestFilters_IsZero(t *testing.T) {
	if !(Filters{}).IsZero() {
		t.Error("empty Filters should be zero")
	}
	if (Filters{Color: "Red"}).IsZero() {
		t.Error("Filters with color should not be zero")
	}
}

package catalog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEnsureSchema_CachedAfterSuccess(t *testing.T) {
	db := newFakeDB()
	svc := newTestService(db, 10)

	if err := svc.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if err := svc.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}

	if len(db.execSQL) != 1 {
		t.Errorf("schema statement executed %d times, want 1", len(db.execSQL))
	}
	if !strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS products") {
		t.Errorf("unexpected schema statement: %q", db.execSQL[0])
	}
}

func TestEnsureSchema_RetriesAfterFailure(t *testing.T) {
	db := newFakeDB()
	db.execErr = errors.New("connection refused")
	svc := newTestService(db, 10)

	if err := svc.EnsureSchema(context.Background()); err == nil {
		t.Fatal("expected error from failing schema creation")
	}

	// A failure must not be cached.
	db.execErr = nil
	if err := svc.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema after recovery failed: %v", err)
	}
	if len(db.execSQL) != 2 {
		t.Errorf("schema statement executed %d times, want 2", len(db.execSQL))
	}
}

func TestList_Defaults(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantArgs    []any
	}{
		{"defaults", 0, 0, []any{10, 0}},
		{"negative page", -3, 0, []any{10, 0}},
		{"page two", 2, 10, []any{10, 10}},
		{"custom limit", 1, 25, []any{25, 0}},
		{"page three of five", 3, 5, []any{5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newFakeDB()
			svc := newTestService(db, 10)

			if _, err := svc.List(context.Background(), tt.page, tt.limit); err != nil {
				t.Fatalf("List failed: %v", err)
			}

			if len(db.queryArgs) != 1 {
				t.Fatalf("expected one query, got %d", len(db.queryArgs))
			}
			if !reflect.DeepEqual(db.queryArgs[0], tt.wantArgs) {
				t.Errorf("query args = %v, want %v", db.queryArgs[0], tt.wantArgs)
			}
		})
	}
}

func TestList_QueryShape(t *testing.T) {
	db := newFakeDB()
	svc := newTestService(db, 10)

	if _, err := svc.List(context.Background(), 1, 10); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	query := db.querySQL[0]
	if !strings.Contains(query, "ORDER BY id") {
		t.Errorf("listing should have a stable order, got %q", query)
	}
	if !strings.Contains(query, "LIMIT $1 OFFSET $2") {
		t.Errorf("listing should paginate, got %q", query)
	}
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(newFakeDB(), 10)

	products, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if products == nil {
		t.Error("empty listing should be an empty slice, not nil")
	}
	if len(products) != 0 {
		t.Errorf("len = %d, want 0", len(products))
	}
}

func TestList_ReturnsRows(t *testing.T) {
	db := newFakeDB()
	db.rows = []Product{
		{ID: 1, SKU: "SKU1", Name: "Shoe", Brand: "Nike", Color: "Black", Size: "10", MRP: 200, Price: 150, Quantity: 5},
		{ID: 2, SKU: "SKU2", Name: "Sock", Brand: "Puma", Color: "White", Size: "L", MRP: 50, Price: 40, Quantity: 10},
	}
	svc := newTestService(db, 10)

	products, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}
	if products[0].SKU != "SKU1" || products[1].Brand != "Puma" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestSearch_AppliesFilters(t *testing.T) {
	db := newFakeDB()
	svc := newTestService(db, 10)

	_, err := svc.Search(context.Background(), Filters{Brand: "Nike", MaxPrice: "500"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	query := db.querySQL[0]
	if !strings.Contains(query, "brand ILIKE $1") || !strings.Contains(query, "price <= $2") {
		t.Errorf("unexpected query: %q", query)
	}
	wantArgs := []any{"%Nike%", "500"}
	if !reflect.DeepEqual(db.queryArgs[0], wantArgs) {
		t.Errorf("args = %v, want %v", db.queryArgs[0], wantArgs)
	}
}

func TestSearch_NoFilters(t *testing.T) {
	db := newFakeDB()
	svc := newTestService(db, 10)

	if _, err := svc.Search(context.Background(), Filters{}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if db.querySQL[0] != selectProducts {
		t.Errorf("query = %q, want bare select", db.querySQL[0])
	}
	if len(db.queryArgs[0]) != 0 {
		t.Errorf("args = %v, want none", db.queryArgs[0])
	}
}

func TestPing(t *testing.T) {
	svc := newTestService(newFakeDB(), 10)

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

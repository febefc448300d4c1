package catalog

import (
	"context"
	"sync"

	"catalog-service/internal/config"

	"github.com/jackc/pgx/v5"
)

// DefaultPageSize is the listing window used when no limit is given.
const DefaultPageSize = 10

// createProductsTable is the lazy, idempotent schema for the catalog.
// Executed before the first insert of each process; the UNIQUE sku
// constraint is what makes conflicting inserts skippable.
const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id       BIGSERIAL PRIMARY KEY,
	sku      TEXT UNIQUE NOT NULL,
	name     TEXT NOT NULL,
	brand    TEXT NOT NULL,
	color    TEXT NOT NULL,
	size     TEXT NOT NULL,
	mrp      DOUBLE PRECISION NOT NULL,
	price    DOUBLE PRECISION NOT NULL,
	quantity INTEGER NOT NULL
)`

const insertProduct = `
INSERT INTO products (sku, name, brand, color, size, mrp, price, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (sku) DO NOTHING`

// Service implements the catalog operations: ingest, list, and search.
type Service struct {
	db        DBTX
	limiter   *IngestLimiter
	batchSize int

	schemaMu    sync.Mutex
	schemaReady bool
}

// NewService creates a catalog service over the given storage handle.
func NewService(db DBTX, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		limiter:   NewIngestLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		batchSize: cfg.Upload.BatchSize,
	}
}

// Limiter exposes the ingest limiter for shutdown draining.
func (s *Service) Limiter() *IngestLimiter {
	return s.limiter
}

// EnsureSchema creates the products table if it does not exist.
// Idempotent; the result is cached per process, but a failure is retried
// on the next call rather than cached.
func (s *Service) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaReady {
		return nil
	}

	if _, err := s.db.Exec(ctx, createProductsTable); err != nil {
		return &QueryError{Op: "ensure schema", Err: err}
	}

	s.schemaReady = true
	return nil
}

// List returns one page of stored products. Page is floored at 1 and
// limit defaults to DefaultPageSize when non-positive. Rows are ordered
// by id so paging is stable across requests.
func (s *Service) List(ctx context.Context, page, limit int) ([]Product, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	offset := (page - 1) * limit

	rows, err := s.db.Query(ctx, selectProducts+" ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, &QueryError{Op: "list products", Err: err}
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Search returns products matching the given filter set, applying the
// predicates built by BuildSearchQuery.
func (s *Service) Search(ctx context.Context, f Filters) ([]Product, error) {
	query, args := BuildSearchQuery(f)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: "search products", Err: err}
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Ping verifies storage connectivity for health checks.
func (s *Service) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return &QueryError{Op: "ping", Err: err}
	}
	return nil
}

// scanProducts collects a row set into products. Always returns a
// non-nil slice so an empty result encodes as a JSON array.
func scanProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)

	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Color, &p.Size, &p.MRP, &p.Price, &p.Quantity); err != nil {
			return nil, &QueryError{Op: "scan product", Err: err}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "read products", Err: err}
	}

	return products, nil
}

// Package catalog provides the business logic for the product catalog:
// CSV ingestion, row validation, and filtered product queries.
// This package has no HTTP dependencies and can be used by any frontend.
package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx, keeping the pipeline
// storage-engine-agnostic.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// Product is a single catalog entry. SKU is the dedup key: inserts that
// collide with an existing SKU are skipped, never overwritten.
type Product struct {
	ID       int64   `json:"id"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Color    string  `json:"color"`
	Size     string  `json:"size"`
	MRP      float64 `json:"mrp"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// RawRow maps CSV column names to string values as parsed from a file,
// prior to normalization. Ephemeral: discarded after conversion to a
// Product or rejection.
type RawRow map[string]string

// UnknownSKU is the sentinel reported for rows whose sku field itself
// is missing or empty.
const UnknownSKU = "UNKNOWN"

// ValidationFailure pairs a sku (or UnknownSKU) with the reason a row
// was rejected. Collected per ingest run, never persisted.
type ValidationFailure struct {
	SKU    string `json:"sku"`
	Reason string `json:"error"`
}

// Result is the outcome of one ingest run.
//
// Stored counts rows that passed validation, matching what callers see as
// "processed". Inserted and Duplicates break that number down: a duplicate
// sku passes validation but writes no new row.
type Result struct {
	IngestID   string              `json:"ingest_id"`
	Total      int                 `json:"total"`
	Stored     int                 `json:"stored"`
	Inserted   int                 `json:"inserted"`
	Duplicates int                 `json:"duplicates"`
	Failures   []ValidationFailure `json:"failed"`
}

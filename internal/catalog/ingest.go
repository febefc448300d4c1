package catalog

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// contextCheckInterval is how many rows are processed between
// cancellation checks while streaming a file.
const contextCheckInterval = 100

// batch accumulates validated products until it is flushed to storage.
type batch struct {
	products []Product
}

func (b *batch) add(p Product) {
	b.products = append(b.products, p)
}

func (b *batch) len() int {
	return len(b.products)
}

func (b *batch) reset() {
	b.products = b.products[:0]
}

// Ingest streams a CSV file, validates each row, and stores the valid
// products. Rows are never buffered whole-file; validated products are
// flushed in batches. Duplicate SKUs already in storage are counted as
// duplicates rather than errors.
func (s *Service) Ingest(ctx context.Context, r io.Reader) (*Result, error) {
	if r == nil {
		return nil, ErrMissingInput
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	ingestID := uuid.New().String()
	start := time.Now()
	log := slog.With("ingest_id", ingestID)
	log.Info("ingest started")

	result := &Result{
		IngestID: ingestID,
		Failures: make([]ValidationFailure, 0),
	}

	reader := csv.NewReader(wrapCSVReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headerRecord, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &ParseError{Err: io.ErrUnexpectedEOF}
		}
		return nil, &ParseError{Err: err}
	}
	header := make([]string, len(headerRecord))
	for i, h := range headerRecord {
		header[i] = CleanHeader(h)
	}

	pending := &batch{}

	for {
		if result.Total%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if isEmptyRecord(record) {
			continue
		}

		result.Total++
		row := NormalizeRow(rowFromRecord(header, record))

		product, err := ToProduct(row)
		if err != nil {
			sku := row["sku"]
			if sku == "" {
				sku = UnknownSKU
			}
			log.Debug("row rejected", "sku", sku, "reason", err)
			result.Failures = append(result.Failures, ValidationFailure{
				SKU:    sku,
				Reason: "Validation failed",
			})
			continue
		}

		result.Stored++
		pending.add(product)

		if pending.len() >= s.batchSize {
			if err := s.flush(ctx, pending, result); err != nil {
				return nil, err
			}
		}
	}

	if err := s.flush(ctx, pending, result); err != nil {
		return nil, err
	}

	log.Info("ingest finished",
		"total", result.Total,
		"stored", result.Stored,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"failed", len(result.Failures),
		"duration", time.Since(start),
	)

	return result, nil
}

// flush writes the pending batch to storage in a single round trip and
// splits the outcome into inserted and duplicate counts.
func (s *Service) flush(ctx context.Context, pending *batch, result *Result) error {
	if pending.len() == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, p := range pending.products {
		b.Queue(insertProduct, p.SKU, p.Name, p.Brand, p.Color, p.Size, p.MRP, p.Price, p.Quantity)
	}

	br := s.db.SendBatch(ctx, b)
	defer br.Close()

	for range pending.products {
		tag, err := br.Exec()
		if err != nil {
			return &QueryError{Op: "insert products", Err: err}
		}
		if tag.RowsAffected() == 1 {
			result.Inserted++
		} else {
			result.Duplicates++
		}
	}

	pending.reset()
	return nil
}

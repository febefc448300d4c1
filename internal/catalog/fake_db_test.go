package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB is an in-memory DBTX for pipeline tests. Inserts are deduped
// on sku the way the real unique constraint behaves; queries return the
// configured row set.
type fakeDB struct {
	execSQL   []string
	querySQL  []string
	queryArgs [][]any

	rows    []Product
	seen    map[string]bool
	execErr error
	sendErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{seen: make(map[string]bool)}
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.querySQL = append(f.querySQL, sql)
	f.queryArgs = append(f.queryArgs, args)
	return &fakeRows{products: f.rows, idx: -1}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.querySQL = append(f.querySQL, sql)
	f.queryArgs = append(f.queryArgs, args)
	return fakeRow{}
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	tags := make([]pgconn.CommandTag, 0, len(b.QueuedQueries))
	for _, q := range b.QueuedQueries {
		sku, _ := q.Arguments[0].(string)
		if f.seen[sku] {
			tags = append(tags, pgconn.NewCommandTag("INSERT 0 0"))
			continue
		}
		f.seen[sku] = true
		tags = append(tags, pgconn.NewCommandTag("INSERT 0 1"))
	}
	return &fakeBatchResults{tags: tags, err: f.sendErr}
}

type fakeBatchResults struct {
	tags []pgconn.CommandTag
	idx  int
	err  error
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	if r.idx >= len(r.tags) {
		return pgconn.CommandTag{}, fmt.Errorf("no more results")
	}
	tag := r.tags[r.idx]
	r.idx++
	return tag, nil
}

func (r *fakeBatchResults) Query() (pgx.Rows, error) { return nil, fmt.Errorf("not implemented") }
func (r *fakeBatchResults) QueryRow() pgx.Row        { return fakeRow{} }
func (r *fakeBatchResults) Close() error             { return nil }

type fakeRow struct{}

func (fakeRow) Scan(dest ...any) error {
	for _, d := range dest {
		if p, ok := d.(*int); ok {
			*p = 1
		}
	}
	return nil
}

// fakeRows walks a product slice, satisfying just enough of pgx.Rows
// for scanProducts.
type fakeRows struct {
	products []Product
	idx      int
	closed   bool
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.products)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.products) {
		return fmt.Errorf("scan out of range")
	}
	p := r.products[r.idx]
	*dest[0].(*int64) = p.ID
	*dest[1].(*string) = p.SKU
	*dest[2].(*string) = p.Name
	*dest[3].(*string) = p.Brand
	*dest[4].(*string) = p.Color
	*dest[5].(*string) = p.Size
	*dest[6].(*float64) = p.MRP
	*dest[7].(*float64) = p.Price
	*dest[8].(*int) = p.Quantity
	return nil
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, fmt.Errorf("not implemented") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

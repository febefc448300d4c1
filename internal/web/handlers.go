package web

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"catalog-service/internal/catalog"
	"catalog-service/internal/logging"
)

// CatalogService is the part of the catalog service the HTTP layer
// depends on. Narrowed to an interface so handler tests can stub it.
type CatalogService interface {
	Ingest(ctx context.Context, r io.Reader) (*catalog.Result, error)
	List(ctx context.Context, page, limit int) ([]catalog.Product, error)
	Search(ctx context.Context, f catalog.Filters) ([]catalog.Product, error)
	Ping(ctx context.Context) error
}

// allowedMIMETypes are the content types accepted for CSV uploads.
// Browsers and export tools disagree wildly on what a CSV is.
var allowedMIMETypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/x-csv":               true,
	"application/vnd.ms-excel": true,
	"text/plain":               true,
}

var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// handleUpload ingests a CSV file posted as multipart form field "file".
// The file streams straight into the pipeline; it is never buffered
// whole in memory.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, catalog.ErrMissingInput)
		return
	}
	defer file.Close()

	if err := checkUploadType(header); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	result, err := s.service.Ingest(ctx, file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("upload complete",
		"ingest_id", result.IngestID,
		"filename", header.Filename,
		"total", result.Total,
		"stored", result.Stored,
		"failed", len(result.Failures),
	)

	writeJSON(w, result)
}

// checkUploadType rejects files that are neither a CSV content type nor
// a CSV-ish extension. The content type is client-supplied, so the
// extension acts as a fallback rather than a second gate.
func checkUploadType(header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	if mime, _, found := strings.Cut(contentType, ";"); found {
		contentType = mime
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))

	if allowedMIMETypes[contentType] {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if allowedExtensions[ext] {
		return nil
	}

	return fmt.Errorf("unsupported file type %q, expected a CSV file", contentType)
}

// handleListProducts returns one page of the catalog as a JSON array.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", catalog.DefaultPageSize)

	products, err := s.service.List(r.Context(), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, products)
}

// handleSearch returns products matching the query filters as a JSON
// array. All filters are optional; none at all returns everything.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := catalog.Filters{
		Brand:    strings.TrimSpace(q.Get("brand")),
		Color:    strings.TrimSpace(q.Get("color")),
		MinPrice: strings.TrimSpace(q.Get("minPrice")),
		MaxPrice: strings.TrimSpace(q.Get("maxPrice")),
	}

	products, err := s.service.Search(r.Context(), filters)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, products)
}

// handleHealth reports service liveness including storage reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		writeMessage(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

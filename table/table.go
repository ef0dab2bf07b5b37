// Package table loads tabular resources (CSV or XLSX, local or over HTTP)
// into rows keyed by column name.
package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stsysd/collisionviz/model"
	"github.com/xuri/excelize/v2"
)

// Row maps a column name to its raw cell text.
type Row map[string]string

// Table is an ordered list of column names plus the data rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// Loader reads tables from file paths or http(s) URLs.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil client gets a 30 second timeout.
func NewLoader(client *http.Client, logger *slog.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, logger: logger}
}

// Load reads the resource. Any failure to reach or decode it is reported as
// model.ErrResourceUnavailable.
func (l *Loader) Load(ctx context.Context, resource string) (*Table, error) {
	start := time.Now()

	raw, err := l.read(ctx, resource)
	if err != nil {
		return nil, unavailable(resource, err)
	}

	var t *Table
	if isXLSX(resource) {
		t, err = ParseXLSX(bytes.NewReader(raw))
	} else {
		t, err = ParseCSV(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, unavailable(resource, err)
	}

	l.logger.InfoContext(ctx, "table loaded",
		slog.String("resource", resource),
		slog.Int("columns", len(t.Columns)),
		slog.Int("rows", len(t.Rows)),
		slog.Duration("elapsed", time.Since(start)))
	return t, nil
}

func (l *Loader) read(ctx context.Context, resource string) ([]byte, error) {
	if !isURL(resource) {
		return os.ReadFile(resource)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func unavailable(resource string, err error) error {
	return model.NewVisualizationError(model.ErrResourceUnavailable,
		fmt.Sprintf("Could not load CSV at %s", resource), err)
}

func isURL(resource string) bool {
	lower := strings.ToLower(resource)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isXLSX(resource string) bool {
	path := resource
	if i := strings.IndexAny(path, "?#"); i >= 0 && isURL(resource) {
		path = path[:i]
	}
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ParseCSV decodes CSV text whose first line is the header. Rows shorter than
// the header leave the trailing columns absent; a repeated header name keeps
// the value of its last occurrence.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return fromRecords(records), nil
}

// ParseXLSX decodes the first sheet of a workbook, first row as header.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRecords(records), nil
}

func fromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	header := make([]string, len(records[0]))
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: header, Rows: rows}
}

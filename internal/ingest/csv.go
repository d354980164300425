// Package ingest reads passive-DNS CSV input row by row. The first record is
// the header; every following record becomes a column-name → value map. No
// field-level validation happens here; the mapper decides what a row must
// contain.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Row is one data record keyed by header column name. Line is the 1-based
// CSV line number, for error reporting.
type Row struct {
	Line   int
	Fields map[string]string
}

// Reader yields Rows from a CSV stream in input order.
type Reader struct {
	cr     *csv.Reader
	header []string
	line   int
}

// NewReader reads the header record and returns a Reader for the data rows.
// A stream with no records at all yields zero rows.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return &Reader{cr: cr}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return &Reader{cr: cr, header: header, line: 1}, nil
}

// Read returns the next row, or io.EOF when the input is exhausted.
func (r *Reader) Read() (Row, error) {
	if r.header == nil {
		return Row{}, io.EOF
	}
	rec, err := r.cr.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("read csv row: %w", err)
	}
	r.line++
	fields := make(map[string]string, len(r.header))
	for i, name := range r.header {
		if i < len(rec) {
			fields[name] = rec[i]
		}
	}
	return Row{Line: r.line, Fields: fields}, nil
}

// Open opens path and returns a Reader plus a close function.
func Open(path string) (*Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f.Close, nil
}

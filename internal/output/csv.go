/*
PURPOSE:
  Writes the benchmark summary to a CSV file.

REQUIREMENTS:
  User-specified:
  - Header row, then one row per record.
  - Absent values are empty cells.
  - UTF-8 (column names include CJK text).

  Implementation-discovered:
  - The file is only created once there is at least one record, so the
    caller decides when to open it.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.
  - Mutex kept so a writer can be shared.

USAGE:
  w, err := output.NewCSVWriter("summary.csv", model.Columns(metrics))
  w.Write(output.Row(rec, cols))
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the CSV layout changes, update model.Columns, not this file.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - None.
*/

package output

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/daryltucker/bench-merge/internal/model"
)

// CSVWriter handles writing rows to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter and writes header.
// It overwrites the file if it exists.
func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Row renders a record in column order. Absent values are empty strings.
func Row(r model.Record, columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i], _ = r.Value(c)
	}
	return row
}

// Write writes a single row to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(row []string) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if err := cw.writer.Write(row); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes and closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		cw.file.Close()
		return err
	}
	return cw.file.Close()
}

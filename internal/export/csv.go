package export

import (
	"io"

	"github.com/swissfort-mfg/entrydesk/internal/entry"
)

// CSVExporter writes the rows as CSV with a trailing totals row.
type CSVExporter struct{}

// Format returns the exporter name.
func (e *CSVExporter) Format() string { return "csv" }

// ContentType returns the MIME type of the output.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension returns the file extension of the output.
func (e *CSVExporter) Extension() string { return ".csv" }

// Export writes s to w.
func (e *CSVExporter) Export(w io.Writer, s Sheet) error {
	return entry.WriteRows(w, s.Rows, s.Formatter)
}

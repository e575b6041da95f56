// Package export renders the committed rows of a form for download.
package export

import (
	"io"
	"sort"
	"strings"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// Sheet is everything an exporter needs about one form.
type Sheet struct {
	Title     string
	Header    model.Header
	Rows      []model.LineItem
	Formatter calc.Formatter
}

// Exporter writes a Sheet in one file format.
type Exporter interface {
	Export(w io.Writer, s Sheet) error
	Format() string
	ContentType() string
	Extension() string
}

// Registry holds named exporters.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.exporters[key] = e
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.exporters))
	for k := range r.exporters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in exporters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVExporter{})
	r.Register(&XLSXExporter{})
	return r
}

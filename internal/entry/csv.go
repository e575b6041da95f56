package entry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// RowHeader returns the CSV header for committed rows.
func RowHeader() []string {
	cols := model.Columns()
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = string(c)
	}
	return h
}

// WriteRows writes rows (including header) followed by a totals row.
func WriteRows(w io.Writer, rows []model.LineItem, f calc.Formatter) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(RowHeader()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, li := range rows {
		if err := cw.Write(f.Row(li)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := cw.Write(TotalsRow(Totals(rows), f)); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// TotalsRow lays a totals record out under the columns it sums.
func TotalsRow(t model.Totals, f calc.Formatter) []string {
	sums := f.Totals(t)
	cols := model.Columns()
	row := make([]string, len(cols))
	row[0] = "Total"
	for i, c := range cols {
		if v, ok := sums[string(c)]; ok {
			row[i] = v
		}
	}
	return row
}

// ReadInputs reads line-item inputs from a CSV whose header names the
// editable fields (sku, category, quantity, rate, discount_percent,
// tax_percent_a, tax_percent_b) in any order. The returned items carry
// inputs only; IDs and derived fields are left to a Session.
func ReadInputs(r io.Reader) ([]model.LineItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading inputs header: %w", err)
	}

	index := make(map[model.Field]int, len(header))
	for i, name := range header {
		index[model.Field(strings.ToLower(strings.TrimSpace(name)))] = i
	}
	for _, f := range model.InputFields() {
		if _, ok := index[f]; !ok {
			return nil, fmt.Errorf("inputs header missing column %q", f)
		}
	}
	cr.FieldsPerRecord = len(header)

	var items []model.LineItem
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		var li model.LineItem
		for _, f := range model.InputFields() {
			li = li.WithInput(f, rec[index[f]])
		}
		items = append(items, li)
	}
	return items, nil
}

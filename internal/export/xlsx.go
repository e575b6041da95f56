package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/entry"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// XLSXExporter writes a workbook with the bill header above the rows.
type XLSXExporter struct{}

const (
	maxSheetName = 31
	numFmtFixed2 = 2 // built-in "0.00"
)

// Format returns the exporter name.
func (e *XLSXExporter) Format() string { return "xlsx" }

// ContentType returns the MIME type of the output.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension of the output.
func (e *XLSXExporter) Extension() string { return ".xlsx" }

// Export writes s to w.
func (e *XLSXExporter) Export(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(s.Title)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtFixed2})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	header := []struct{ label, value string }{
		{"Trn No", s.Header.TrnNo},
		{"Invoice No", s.Header.InvoiceNo},
		{"Invoice Date", s.Header.InvoiceDate},
		{"Party", s.Header.Party},
		{"Trn Date", s.Header.TrnDate},
	}
	row := 1
	for _, h := range header {
		if err := setRow(f, name, row, []any{h.label, h.value}); err != nil {
			return err
		}
		if err := f.SetCellStyle(name, cell(1, row), cell(1, row), bold); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
		row++
	}
	row++

	cols := model.Columns()
	titles := make([]any, len(cols))
	for i, c := range entry.RowHeader() {
		titles[i] = c
	}
	if err := setRow(f, name, row, titles); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, cell(1, row), cell(len(cols), row), bold); err != nil {
		return fmt.Errorf("styling columns: %w", err)
	}
	row++
	first := row

	for _, li := range s.Rows {
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = cellValue(li, c, s.Formatter)
		}
		if err := setRow(f, name, row, values); err != nil {
			return err
		}
		row++
	}

	totals := entry.TotalsRow(entry.Totals(s.Rows), s.Formatter)
	values := make([]any, len(totals))
	for i, v := range totals {
		values[i] = numberOrText(v)
	}
	if err := setRow(f, name, row, values); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, cell(1, row), cell(1, row), bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	for i, c := range cols {
		if isMoney(c) {
			if err := f.SetCellStyle(name, cell(i+1, first), cell(i+1, row), money); err != nil {
				return fmt.Errorf("styling %s: %w", c, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SheetName makes title usable as a worksheet name.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Entries"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// cellValue keeps numbers numeric so the sheet can sum them.
func cellValue(li model.LineItem, c model.Field, fm calc.Formatter) any {
	if c == model.FieldSerial {
		return li.Serial
	}
	if c == model.FieldSKU || c == model.FieldCategory {
		return fm.Value(li, c)
	}
	return numberOrText(fm.Value(li, c))
}

func numberOrText(v string) any {
	if calc.IsNumeric(v) {
		return calc.ParseAmount(v).InexactFloat64()
	}
	return v
}

func isMoney(c model.Field) bool {
	switch c {
	case model.FieldAmount, model.FieldDiscountAmount, model.FieldNetAmount,
		model.FieldTaxValueA, model.FieldTaxValueB, model.FieldFinalAmount:
		return true
	}
	return false
}

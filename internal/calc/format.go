package calc

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// Formatter renders line-item values for display and export.
type Formatter struct {
	// HideZero renders a zero derived value as "" instead of "0.00".
	HideZero bool
}

// Format renders d with exactly two decimal places.
func (f Formatter) Format(d decimal.Decimal) string {
	if f.HideZero && d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

// Value renders any column of li. Inputs are returned as typed.
func (f Formatter) Value(li model.LineItem, field model.Field) string {
	if raw, ok := li.Input(field); ok {
		return raw
	}
	switch field {
	case model.FieldSerial:
		if li.Serial == 0 {
			return ""
		}
		return strconv.Itoa(li.Serial)
	case model.FieldAmount:
		return f.Format(li.Amount)
	case model.FieldDiscountAmount:
		return f.Format(li.DiscountAmount)
	case model.FieldNetAmount:
		return f.Format(li.NetAmount)
	case model.FieldTaxValueA:
		return f.Format(li.TaxValueA)
	case model.FieldTaxValueB:
		return f.Format(li.TaxValueB)
	case model.FieldFinalAmount:
		return f.Format(li.FinalAmount)
	}
	return ""
}

// Row renders every column of li in model.Columns order.
func (f Formatter) Row(li model.LineItem) []string {
	cols := model.Columns()
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = f.Value(li, c)
	}
	return row
}

// Map renders every column of li keyed by field name.
func (f Formatter) Map(li model.LineItem) map[string]string {
	m := make(map[string]string, len(model.Columns())+1)
	m["id"] = li.ID
	for _, c := range model.Columns() {
		m[string(c)] = f.Value(li, c)
	}
	return m
}

// Totals renders a totals record keyed by the column it sums.
func (f Formatter) Totals(t model.Totals) map[string]string {
	return map[string]string{
		string(model.FieldQuantity):       t.Quantity.String(),
		string(model.FieldAmount):         f.Format(t.Amount),
		string(model.FieldDiscountAmount): f.Format(t.DiscountAmount),
		string(model.FieldTaxValueA):      f.Format(t.TaxValueA),
		string(model.FieldTaxValueB):      f.Format(t.TaxValueB),
		string(model.FieldFinalAmount):    f.Format(t.FinalAmount),
	}
}

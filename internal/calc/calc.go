// Package calc derives the monetary fields of a line item from its inputs.
package calc

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

var hundred = decimal.NewFromInt(100)

// numericPrefix matches the longest leading number in a user string, the way
// a browser's parseFloat reads "12.5kg" as 12.5.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d{1,3})?`)

// ParseAmount reads the numeric value of raw user text. Empty or
// non-numeric text is zero.
func ParseAmount(raw string) decimal.Decimal {
	s := numericPrefix.FindString(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero
	}
	if mant, exp, ok := strings.Cut(s, "e"); ok {
		s = strings.TrimSuffix(mant, ".") + "e" + exp
	} else if mant, exp, ok := strings.Cut(s, "E"); ok {
		s = strings.TrimSuffix(mant, ".") + "e" + exp
	} else {
		s = strings.TrimSuffix(s, ".")
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether raw is a complete number with nothing trailing.
func IsNumeric(raw string) bool {
	s := strings.TrimSpace(raw)
	return s != "" && numericPrefix.FindString(s) == s
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsInput reports whether field is editable by the user.
func IsInput(field model.Field) bool {
	_, ok := model.LineItem{}.Input(field)
	return ok
}

// IsNumericInput reports whether field is an editable field that feeds the
// calculation.
func IsNumericInput(field model.Field) bool {
	switch field {
	case model.FieldQuantity, model.FieldRate, model.FieldDiscountPercent,
		model.FieldTaxPercentA, model.FieldTaxPercentB:
		return true
	}
	return false
}

// Recompute sets field to value and re-derives the monetary fields.
// Identity fields (sku, category) are replaced without recalculation.
// Derived or unknown fields leave the item unchanged.
func Recompute(item model.LineItem, field model.Field, value string) model.LineItem {
	switch {
	case field == model.FieldSKU, field == model.FieldCategory:
		return item.WithInput(field, value)
	case IsNumericInput(field):
		return Derive(item.WithInput(field, value))
	default:
		return item
	}
}

// Derive recomputes every derived field from the item's current inputs.
// Each monetary step is rounded to two places before feeding the next.
func Derive(item model.LineItem) model.LineItem {
	qty := ParseAmount(item.Quantity)
	rate := ParseAmount(item.Rate)
	disPct := ParseAmount(item.DiscountPercent)
	taxPctA := ParseAmount(item.TaxPercentA)
	taxPctB := ParseAmount(item.TaxPercentB)

	item.Amount = Round2(qty.Mul(rate))
	item.DiscountAmount = percentOf(item.Amount, disPct)
	item.NetAmount = item.Amount.Sub(item.DiscountAmount)
	item.TaxValueA = percentOf(item.NetAmount, taxPctA)
	item.TaxValueB = percentOf(item.NetAmount, taxPctB)
	item.FinalAmount = Round2(item.NetAmount.Add(item.TaxValueA).Add(item.TaxValueB))
	return item
}

func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Div(hundred))
}

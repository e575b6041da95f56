package model

import "github.com/shopspring/decimal"

// Field names a line-item field as the shell addresses it.
type Field string

// Editable inputs.
const (
	FieldSKU             Field = "sku"
	FieldCategory        Field = "category"
	FieldQuantity        Field = "quantity"
	FieldRate            Field = "rate"
	FieldDiscountPercent Field = "discount_percent"
	FieldTaxPercentA     Field = "tax_percent_a"
	FieldTaxPercentB     Field = "tax_percent_b"
)

// Derived fields. Read-only.
const (
	FieldSerial         Field = "serial"
	FieldAmount         Field = "amount"
	FieldDiscountAmount Field = "discount_amount"
	FieldNetAmount      Field = "net_amount"
	FieldTaxValueA      Field = "tax_value_a"
	FieldTaxValueB      Field = "tax_value_b"
	FieldFinalAmount    Field = "final_amount"
)

// LineItem is one row of a transaction form: a draft while being edited,
// a table row once committed.
type LineItem struct {
	ID       string
	Serial   int // 0 while the item is a draft
	SKU      string
	Category string

	// Raw user text; parsed for calculation only.
	Quantity        string
	Rate            string
	DiscountPercent string
	TaxPercentA     string
	TaxPercentB     string

	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	TaxValueA      decimal.Decimal
	TaxValueB      decimal.Decimal
	FinalAmount    decimal.Decimal
}

// NewLineItem returns an empty draft carrying id.
func NewLineItem(id string) LineItem {
	return LineItem{ID: id}
}

// Input returns the raw text of an editable field and whether field is one.
func (li LineItem) Input(f Field) (string, bool) {
	switch f {
	case FieldSKU:
		return li.SKU, true
	case FieldCategory:
		return li.Category, true
	case FieldQuantity:
		return li.Quantity, true
	case FieldRate:
		return li.Rate, true
	case FieldDiscountPercent:
		return li.DiscountPercent, true
	case FieldTaxPercentA:
		return li.TaxPercentA, true
	case FieldTaxPercentB:
		return li.TaxPercentB, true
	}
	return "", false
}

// WithInput returns a copy of li with the editable field f set to value.
// Non-input fields leave the copy unchanged.
func (li LineItem) WithInput(f Field, value string) LineItem {
	switch f {
	case FieldSKU:
		li.SKU = value
	case FieldCategory:
		li.Category = value
	case FieldQuantity:
		li.Quantity = value
	case FieldRate:
		li.Rate = value
	case FieldDiscountPercent:
		li.DiscountPercent = value
	case FieldTaxPercentA:
		li.TaxPercentA = value
	case FieldTaxPercentB:
		li.TaxPercentB = value
	}
	return li
}

// InputFields lists the editable fields in form order.
func InputFields() []Field {
	return []Field{
		FieldSKU,
		FieldCategory,
		FieldQuantity,
		FieldRate,
		FieldDiscountPercent,
		FieldTaxPercentA,
		FieldTaxPercentB,
	}
}

// Columns lists every table column in display order, starting with serial.
func Columns() []Field {
	return []Field{
		FieldSerial,
		FieldSKU,
		FieldCategory,
		FieldQuantity,
		FieldRate,
		FieldAmount,
		FieldDiscountPercent,
		FieldDiscountAmount,
		FieldNetAmount,
		FieldTaxPercentA,
		FieldTaxValueA,
		FieldTaxPercentB,
		FieldTaxValueB,
		FieldFinalAmount,
	}
}

package model

import "github.com/shopspring/decimal"

// Totals sums the numeric columns over a set of rows.
type Totals struct {
	Rows           int
	Quantity       decimal.Decimal
	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxValueA      decimal.Decimal
	TaxValueB      decimal.Decimal
	FinalAmount    decimal.Decimal
}

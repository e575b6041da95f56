package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func fill(item model.LineItem, qty, rate, dis, taxA, taxB string) model.LineItem {
	item = Recompute(item, model.FieldQuantity, qty)
	item = Recompute(item, model.FieldRate, rate)
	item = Recompute(item, model.FieldDiscountPercent, dis)
	item = Recompute(item, model.FieldTaxPercentA, taxA)
	return Recompute(item, model.FieldTaxPercentB, taxB)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "0"},
		{"abc", "0"},
		{"10", "10"},
		{" 10.5 ", "10.5"},
		{"12abc", "12"},
		{"5.", "5"},
		{".25", "0.25"},
		{"-3", "-3"},
		{"+4", "4"},
		{"1e2", "100"},
		{"1.5E1x", "15"},
		{"1.2.3", "1.2"},
	}
	for _, tt := range tests {
		assertDec(t, tt.want, ParseAmount(tt.raw), tt.raw)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("10"))
	assert.True(t, IsNumeric(" 10.50 "))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("10m"))
	assert.False(t, IsNumeric("ten"))
}

func TestRecompute_FullRow(t *testing.T) {
	item := fill(model.NewLineItem("FAB-000001"), "10", "100", "10", "5", "5")

	assertDec(t, "1000.00", item.Amount, "amount")
	assertDec(t, "100.00", item.DiscountAmount, "discount")
	assertDec(t, "900.00", item.NetAmount, "net")
	assertDec(t, "45.00", item.TaxValueA, "taxA")
	assertDec(t, "45.00", item.TaxValueB, "taxB")
	assertDec(t, "990.00", item.FinalAmount, "final")
	assert.Equal(t, "10", item.Quantity)
}

func TestRecompute_RoundsEachStep(t *testing.T) {
	// 3.333 * 3 = 9.999 -> 10.00; 10.00 * 12.5% = 1.25; net 8.75;
	// 8.75 * 2.5% = 0.21875 -> 0.22 per tax; final 9.19.
	item := fill(model.NewLineItem("x"), "3.333", "3", "12.5", "2.5", "2.5")

	assertDec(t, "10.00", item.Amount, "amount")
	assertDec(t, "1.25", item.DiscountAmount, "discount")
	assertDec(t, "8.75", item.NetAmount, "net")
	assertDec(t, "0.22", item.TaxValueA, "taxA")
	assertDec(t, "0.22", item.TaxValueB, "taxB")
	assertDec(t, "9.19", item.FinalAmount, "final")
}

func TestRecompute_EditOrderIndependent(t *testing.T) {
	a := Recompute(model.NewLineItem("x"), model.FieldQuantity, "7.25")
	a = Recompute(a, model.FieldRate, "19.99")

	b := Recompute(model.NewLineItem("x"), model.FieldRate, "19.99")
	b = Recompute(b, model.FieldQuantity, "7.25")

	assert.Equal(t, a, b)
	assertDec(t, "144.93", a.Amount, "amount")
}

func TestRecompute_Idempotent(t *testing.T) {
	item := fill(model.NewLineItem("x"), "2.5", "41.3", "7", "9", "9")
	once := Recompute(item, model.FieldRate, "41.3")
	twice := Recompute(once, model.FieldRate, "41.3")
	assert.Equal(t, once, twice)
	assert.Equal(t, item, once)
}

func TestRecompute_IdentityFieldsSkipCalculation(t *testing.T) {
	item := model.NewLineItem("x")
	item.Quantity = "2"
	item.Rate = "3"
	// Amount not derived yet; editing sku must not trigger it.
	got := Recompute(item, model.FieldSKU, "SKU-1")
	assert.Equal(t, "SKU-1", got.SKU)
	assert.True(t, got.Amount.IsZero())

	got = Recompute(got, model.FieldCategory, "Fabric1")
	assert.Equal(t, "Fabric1", got.Category)
	assert.True(t, got.Amount.IsZero())
}

func TestRecompute_NonNumericIsZeroButKept(t *testing.T) {
	item := fill(model.NewLineItem("x"), "abc", "100", "", "", "")
	assert.Equal(t, "abc", item.Quantity)
	assert.True(t, item.Amount.IsZero())
	assert.True(t, item.FinalAmount.IsZero())

	item = Recompute(item, model.FieldQuantity, "2")
	assertDec(t, "200.00", item.Amount, "amount")
	assertDec(t, "200.00", item.FinalAmount, "final")
}

func TestRecompute_PercentAbove100(t *testing.T) {
	item := fill(model.NewLineItem("x"), "1", "100", "150", "200", "0")
	assertDec(t, "150.00", item.DiscountAmount, "discount")
	assertDec(t, "-50.00", item.NetAmount, "net")
	assertDec(t, "-100.00", item.TaxValueA, "taxA")
	assertDec(t, "-150.00", item.FinalAmount, "final")
}

func TestRecompute_DerivedFieldUnchanged(t *testing.T) {
	item := fill(model.NewLineItem("x"), "1", "100", "0", "0", "0")
	got := Recompute(item, model.FieldAmount, "5")
	assert.Equal(t, item, got)

	got = Recompute(item, "nonsense", "5")
	assert.Equal(t, item, got)
}

func TestFinalEqualsSumOfParts(t *testing.T) {
	inputs := [][5]string{
		{"1", "1", "0", "0", "0"},
		{"13.7", "8.15", "3.5", "6", "6"},
		{"250", "0.99", "100", "9", "9"},
		{"0.001", "0.001", "50", "50", "50"},
		{"99999", "12345.67", "33.33", "14", "14"},
	}
	for _, in := range inputs {
		item := fill(model.NewLineItem("x"), in[0], in[1], in[2], in[3], in[4])
		want := Round2(item.NetAmount.Add(item.TaxValueA).Add(item.TaxValueB))
		assert.True(t, want.Equal(item.FinalAmount), "inputs %v", in)
		assert.True(t, Round2(ParseAmount(in[0]).Mul(ParseAmount(in[1]))).Equal(item.Amount), "inputs %v", in)
	}
}

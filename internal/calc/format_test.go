package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func TestFormat(t *testing.T) {
	f := Formatter{}
	assert.Equal(t, "0.00", f.Format(decimal.Zero))
	assert.Equal(t, "12.50", f.Format(dec("12.5")))

	hide := Formatter{HideZero: true}
	assert.Equal(t, "", hide.Format(decimal.Zero))
	assert.Equal(t, "12.50", hide.Format(dec("12.5")))
}

func TestFormatterValue(t *testing.T) {
	item := fill(model.NewLineItem("FAB-000001"), "10", "100", "", "5", "")
	item.SKU = "S1"
	item.Serial = 3

	f := Formatter{}
	assert.Equal(t, "3", f.Value(item, model.FieldSerial))
	assert.Equal(t, "S1", f.Value(item, model.FieldSKU))
	assert.Equal(t, "1000.00", f.Value(item, model.FieldAmount))
	assert.Equal(t, "0.00", f.Value(item, model.FieldDiscountAmount))
	assert.Equal(t, "1050.00", f.Value(item, model.FieldFinalAmount))

	hide := Formatter{HideZero: true}
	assert.Equal(t, "", hide.Value(item, model.FieldDiscountAmount))
	assert.Equal(t, "", hide.Value(item, model.FieldTaxValueB))

	draft := model.NewLineItem("x")
	assert.Equal(t, "", f.Value(draft, model.FieldSerial))
}

func TestFormatterRowAndMap(t *testing.T) {
	item := fill(model.NewLineItem("FAB-000001"), "2", "3", "", "", "")
	item.Serial = 1

	row := Formatter{}.Row(item)
	assert.Len(t, row, len(model.Columns()))
	assert.Equal(t, "1", row[0])

	m := Formatter{}.Map(item)
	assert.Equal(t, "FAB-000001", m["id"])
	assert.Equal(t, "6.00", m["amount"])
}

package entry

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// completeItem returns a derived, complete line item.
func completeItem(id, sku, category, qty, rate, dis, taxA, taxB string) model.LineItem {
	li := model.NewLineItem(id)
	li.SKU = sku
	li.Category = category
	li.Quantity = qty
	li.Rate = rate
	li.DiscountPercent = dis
	li.TaxPercentA = taxA
	li.TaxPercentB = taxB
	return calc.Derive(li)
}

// standardItem is the 10 m @ 100, 10% off, 5% + 5% tax row (final 990.00).
func standardItem(id string) model.LineItem {
	return completeItem(id, "SKU-"+id, "Fabric1", "10", "100", "10", "5", "5")
}

func tableOf(n int) *Table {
	t := NewTable()
	for i := 1; i <= n; i++ {
		t.Append(standardItem(fmt.Sprintf("FAB-%06d", i)))
	}
	return t
}

func serials(rows []model.LineItem) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Serial
	}
	return out
}

func ids(rows []model.LineItem) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func fill(s *Session, in map[model.Field]string) {
	for _, f := range model.InputFields() {
		if v, ok := in[f]; ok {
			if _, err := s.EditDraftField(f, v); err != nil {
				panic(err)
			}
		}
	}
}

func fabricSpec() model.FormSpec {
	return model.FormSpec{
		Kind:          model.FormFabricEntry,
		Label:         "Fabric Entry",
		IDPrefix:      "FAB",
		Shortcut:      'F',
		CategoryLabel: "Fabric For",
		QuantityLabel: "Meter",
		Categories:    []string{"Fabric1", "Fabric2"},
	}
}

type fakeCategories map[string]bool

func (f fakeCategories) IsCategory(_ model.FormKind, value string) bool {
	return f[value]
}

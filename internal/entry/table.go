package entry

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/model"
)

// DefaultPageSize is the number of rows shown per page when a query does
// not say otherwise.
const DefaultPageSize = 5

// ColumnAll searches every column.
const ColumnAll = "all"

// SortDir is the direction of the serial sort.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Query selects a page of rows.
type Query struct {
	Search   string
	Column   string // ColumnAll, "" (same as all) or a model.Field name
	SortKey  string // only "serial" sorts; anything else keeps serial order
	SortDir  SortDir
	Page     int // 1-based; clamped into range
	PageSize int // <= 0 means DefaultPageSize
}

// Page is the result of a Query.
type Page struct {
	Items      []model.LineItem
	Page       int
	PageSize   int
	TotalCount int // rows passing the filter
	TotalPages int
	Totals     model.Totals // over all filtered rows, not just this page
}

// Table holds the committed rows of one form session in serial order.
type Table struct {
	rows []model.LineItem
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of committed rows.
func (t *Table) Len() int { return len(t.rows) }

// Append stores item as the last row and returns it with its serial set.
func (t *Table) Append(item model.LineItem) model.LineItem {
	item.Serial = len(t.rows) + 1
	t.rows = append(t.rows, item)
	return item
}

// Remove deletes the row with id and renumbers the remaining rows 1..N in
// their existing order. Unknown ids and empty tables are a no-op.
func (t *Table) Remove(id string) bool {
	i := slices.IndexFunc(t.rows, func(li model.LineItem) bool { return li.ID == id })
	if i < 0 {
		return false
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	for j := i; j < len(t.rows); j++ {
		t.rows[j].Serial = j + 1
	}
	return true
}

// Get returns the row with id.
func (t *Table) Get(id string) (model.LineItem, bool) {
	i := slices.IndexFunc(t.rows, func(li model.LineItem) bool { return li.ID == id })
	if i < 0 {
		return model.LineItem{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of every row in serial order.
func (t *Table) Rows() []model.LineItem {
	return slices.Clone(t.rows)
}

// Query filters, sorts and paginates the rows.
func (t *Table) Query(q Query) Page {
	filtered := Filter(t.rows, q.Search, q.Column)

	if (q.SortKey == "" || q.SortKey == string(model.FieldSerial)) && q.SortDir == SortDesc {
		slices.Reverse(filtered)
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (len(filtered) + size - 1) / size

	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*size, len(filtered))
	end := min(start+size, len(filtered))

	return Page{
		Items:      slices.Clone(filtered[start:end]),
		Page:       page,
		PageSize:   size,
		TotalCount: len(filtered),
		TotalPages: totalPages,
		Totals:     Totals(filtered),
	}
}

// Filter keeps rows whose column (or any column, for ColumnAll) contains
// term, ignoring case. An empty term keeps every row. The result is a new
// slice.
func Filter(rows []model.LineItem, term, column string) []model.LineItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(rows)
	}

	var f calc.Formatter
	columns := model.Columns()
	if column != "" && column != ColumnAll {
		columns = []model.Field{model.Field(column)}
	}

	out := make([]model.LineItem, 0, len(rows))
	for _, li := range rows {
		for _, c := range columns {
			if strings.Contains(strings.ToLower(f.Value(li, c)), term) {
				out = append(out, li)
				break
			}
		}
	}
	return out
}

// Totals sums the numeric columns of items.
func Totals(items []model.LineItem) model.Totals {
	t := model.Totals{
		Rows:           len(items),
		Quantity:       decimal.Zero,
		Amount:         decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxValueA:      decimal.Zero,
		TaxValueB:      decimal.Zero,
		FinalAmount:    decimal.Zero,
	}
	for _, li := range items {
		t.Quantity = t.Quantity.Add(calc.ParseAmount(li.Quantity))
		t.Amount = t.Amount.Add(li.Amount)
		t.DiscountAmount = t.DiscountAmount.Add(li.DiscountAmount)
		t.TaxValueA = t.TaxValueA.Add(li.TaxValueA)
		t.TaxValueB = t.TaxValueB.Add(li.TaxValueB)
		t.FinalAmount = t.FinalAmount.Add(li.FinalAmount)
	}
	return t
}

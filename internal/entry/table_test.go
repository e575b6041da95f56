package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func TestAppend_AssignsSerials(t *testing.T) {
	tbl := NewTable()
	a := tbl.Append(standardItem("FAB-000001"))
	b := tbl.Append(standardItem("FAB-000002"))
	assert.Equal(t, 1, a.Serial)
	assert.Equal(t, 2, b.Serial)
	assert.Equal(t, 2, tbl.Len())
}

func TestAppendThenRemove_RestoresSerials(t *testing.T) {
	tbl := tableOf(3)
	before := tbl.Rows()

	added := tbl.Append(standardItem("FAB-000099"))
	require.True(t, tbl.Remove(added.ID))

	assert.Equal(t, before, tbl.Rows())
}

func TestRemove_MiddleRenumbers(t *testing.T) {
	tbl := tableOf(4)
	require.True(t, tbl.Remove("FAB-000002"))

	rows := tbl.Rows()
	assert.Equal(t, []int{1, 2, 3}, serials(rows))
	assert.Equal(t, []string{"FAB-000001", "FAB-000003", "FAB-000004"}, ids(rows))
}

func TestRemove_FirstAndLast(t *testing.T) {
	tbl := tableOf(3)
	require.True(t, tbl.Remove("FAB-000003"))
	require.True(t, tbl.Remove("FAB-000001"))

	rows := tbl.Rows()
	assert.Equal(t, []int{1}, serials(rows))
	assert.Equal(t, []string{"FAB-000002"}, ids(rows))
}

func TestRemove_UnknownAndEmptyAreNoOps(t *testing.T) {
	empty := NewTable()
	assert.False(t, empty.Remove("FAB-000001"))
	assert.Equal(t, 0, empty.Len())

	tbl := tableOf(2)
	assert.False(t, tbl.Remove("FAB-999999"))
	assert.Equal(t, []int{1, 2}, serials(tbl.Rows()))
}

func TestGet(t *testing.T) {
	tbl := tableOf(2)
	li, ok := tbl.Get("FAB-000002")
	require.True(t, ok)
	assert.Equal(t, 2, li.Serial)

	_, ok = tbl.Get("nope")
	assert.False(t, ok)
}

func TestRows_IsCopy(t *testing.T) {
	tbl := tableOf(1)
	rows := tbl.Rows()
	rows[0].SKU = "changed"
	assert.NotEqual(t, "changed", tbl.Rows()[0].SKU)
}

func TestTotals_TwoStandardRows(t *testing.T) {
	tbl := tableOf(2)
	tot := Totals(tbl.Rows())

	assert.Equal(t, 2, tot.Rows)
	assert.True(t, dec("20").Equal(tot.Quantity))
	assert.True(t, dec("2000.00").Equal(tot.Amount))
	assert.True(t, dec("200.00").Equal(tot.DiscountAmount))
	assert.True(t, dec("90.00").Equal(tot.TaxValueA))
	assert.True(t, dec("90.00").Equal(tot.TaxValueB))
	assert.True(t, dec("1980.00").Equal(tot.FinalAmount))
}

func TestTotals_Empty(t *testing.T) {
	tot := Totals(nil)
	assert.Equal(t, 0, tot.Rows)
	assert.True(t, tot.FinalAmount.IsZero())
}

func TestQuery_Pagination(t *testing.T) {
	tbl := tableOf(12)

	p := tbl.Query(Query{Page: 3, PageSize: 5})
	assert.Len(t, p.Items, 2)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 12, p.TotalCount)
	assert.Equal(t, []int{11, 12}, serials(p.Items))

	p = tbl.Query(Query{Page: 1})
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, serials(p.Items))
}

func TestQuery_PageClamped(t *testing.T) {
	tbl := tableOf(6)

	p := tbl.Query(Query{Page: 9, PageSize: 5})
	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Items, 1)

	p = tbl.Query(Query{Page: 0, PageSize: 5})
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, 5)
}

func TestQuery_EmptyTable(t *testing.T) {
	p := NewTable().Query(Query{Search: "x", SortDir: SortDesc, Page: 4})
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalCount)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.True(t, p.Totals.FinalAmount.IsZero())
}

func TestQuery_SortSerial(t *testing.T) {
	tbl := tableOf(3)

	p := tbl.Query(Query{SortKey: "serial", SortDir: SortDesc})
	assert.Equal(t, []int{3, 2, 1}, serials(p.Items))

	p = tbl.Query(Query{SortKey: "serial", SortDir: SortAsc})
	assert.Equal(t, []int{1, 2, 3}, serials(p.Items))

	// Other keys are ignored.
	p = tbl.Query(Query{SortKey: "final_amount", SortDir: SortDesc})
	assert.Equal(t, []int{1, 2, 3}, serials(p.Items))

	// Sorting never reorders the table itself.
	assert.Equal(t, []int{1, 2, 3}, serials(tbl.Rows()))
}

func searchTable() *Table {
	tbl := NewTable()
	tbl.Append(completeItem("FAB-000001", "A-100", "Fabric1", "10", "100", "10", "5", "5"))
	tbl.Append(completeItem("FAB-000002", "B-200", "Fabric2", "3", "50", "0", "0", "0"))
	tbl.Append(completeItem("FAB-000003", "fabric1-roll", "Fabric2", "1", "1", "0", "0", "0"))
	return tbl
}

func TestQuery_SearchAllColumns(t *testing.T) {
	p := searchTable().Query(Query{Search: "Fabric1", Column: ColumnAll})
	assert.Equal(t, []string{"FAB-000001", "FAB-000003"}, ids(p.Items))
	assert.Equal(t, 2, p.TotalCount)
}

func TestQuery_SearchNamedColumn(t *testing.T) {
	p := searchTable().Query(Query{Search: "fabric1", Column: string(model.FieldCategory)})
	assert.Equal(t, []string{"FAB-000001"}, ids(p.Items))

	p = searchTable().Query(Query{Search: "150.00", Column: string(model.FieldFinalAmount)})
	assert.Equal(t, []string{"FAB-000002"}, ids(p.Items))

	p = searchTable().Query(Query{Search: "x", Column: "no_such_column"})
	assert.Empty(t, p.Items)
}

func TestQuery_TotalsFollowFilter(t *testing.T) {
	p := searchTable().Query(Query{Search: "B-200", PageSize: 1})
	require.Len(t, p.Items, 1)
	assert.True(t, dec("150.00").Equal(p.Totals.FinalAmount))
	assert.Equal(t, 1, p.Totals.Rows)

	// Totals span every filtered row, not just the page.
	all := tableOf(7).Query(Query{Page: 1, PageSize: 5})
	assert.True(t, dec("6930.00").Equal(all.Totals.FinalAmount))
}

package records_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/records"
)

func tableFixture(n int) []domain.Transaction {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		payment := domain.PaymentPaid
		if i%3 == 0 {
			payment = domain.PaymentUnpaid
		}
		recs = append(recs, domain.Transaction{
			InvoiceNo:     fmt.Sprintf("SW-%03d", i),
			CustomerName:  fmt.Sprintf("Customer %02d", i),
			PaymentStatus: payment,
			LaundryStatus: domain.LaundryPending,
			PickupStatus:  domain.PickupUnclaimed,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
	}
	return recs
}

func TestTable_DefaultsNewestFirst(t *testing.T) {
	tbl := records.NewTable(10)
	tbl.SetRecords(tableFixture(25))

	key, dir := tbl.Sort()
	assert.Equal(t, records.SortByDate, key)
	assert.Equal(t, records.Descending, dir)

	view := tbl.View()
	require.Len(t, view.Rows, 10)
	assert.Equal(t, "Customer 24", view.Rows[0].CustomerName)
}

func TestTable_SortToggle(t *testing.T) {
	tbl := records.NewTable(10)
	tbl.SetRecords(tableFixture(5))

	// New column starts ascending
	tbl.SortBy(records.SortByName)
	key, dir := tbl.Sort()
	assert.Equal(t, records.SortByName, key)
	assert.Equal(t, records.Ascending, dir)
	assert.Equal(t, "Customer 00", tbl.View().Rows[0].CustomerName)

	// Same column flips direction
	tbl.SortBy(records.SortByName)
	_, dir = tbl.Sort()
	assert.Equal(t, records.Descending, dir)
	assert.Equal(t, "Customer 04", tbl.View().Rows[0].CustomerName)

	// Third click flips back
	tbl.SortBy(records.SortByName)
	_, dir = tbl.Sort()
	assert.Equal(t, records.Ascending, dir)
}

func TestTable_FilterAndSortResetPage(t *testing.T) {
	tbl := records.NewTable(10)
	tbl.SetRecords(tableFixture(50))

	tbl.SetPage(4)
	require.Equal(t, 4, tbl.Page())

	tbl.SetSearch("customer")
	assert.Equal(t, 1, tbl.Page(), "search change resets the pager")

	tbl.SetPage(3)
	tbl.SetPaymentFilter([]domain.PaymentStatus{domain.PaymentUnpaid})
	assert.Equal(t, 1, tbl.Page(), "filter change resets the pager")

	tbl.SetPaymentFilter(nil)
	tbl.SetPage(3)
	tbl.SortBy(records.SortByPrice)
	assert.Equal(t, 1, tbl.Page(), "sort change resets the pager")
}

func TestTable_SetPageClampsToFilteredSet(t *testing.T) {
	tbl := records.NewTable(10)
	tbl.SetRecords(tableFixture(50))

	// 17 of 50 rows are unpaid, so two pages
	tbl.SetPaymentFilter([]domain.PaymentStatus{domain.PaymentUnpaid})
	require.Equal(t, 2, tbl.View().TotalPages)

	tbl.SetPage(5)
	assert.Equal(t, 2, tbl.Page(), "page clamps to the filtered page count")

	tbl.SetPage(0)
	assert.Equal(t, 1, tbl.Page())
}

func TestTable_EmptyFilterMatchesAll(t *testing.T) {
	tbl := records.NewTable(100)
	tbl.SetRecords(tableFixture(30))

	tbl.SetPaymentFilter([]domain.PaymentStatus{})
	assert.Len(t, tbl.View().Rows, 30, "empty selection means no filter, not none")
}

func TestTable_PagingKeepsFilters(t *testing.T) {
	tbl := records.NewTable(5)
	tbl.SetRecords(tableFixture(50))
	tbl.SetPaymentFilter([]domain.PaymentStatus{domain.PaymentUnpaid})

	tbl.SetPage(2)
	view := tbl.View()
	for _, r := range view.Rows {
		assert.Equal(t, domain.PaymentUnpaid, r.PaymentStatus)
	}
}

func TestTable_EmptyRecords(t *testing.T) {
	tbl := records.NewTable(10)
	view := tbl.View()
	assert.Empty(t, view.Rows)
	assert.Equal(t, 1, view.TotalPages)
}

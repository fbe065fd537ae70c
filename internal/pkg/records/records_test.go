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

func tx(name string, payment domain.PaymentStatus, laundry domain.LaundryStatus, created time.Time) domain.Transaction {
	return domain.Transaction{
		CustomerName:  name,
		PaymentStatus: payment,
		LaundryStatus: laundry,
		PickupStatus:  domain.PickupUnclaimed,
		CreatedAt:     created,
	}
}

func TestCriteria_Matches(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec := tx("Maria Santos", domain.PaymentPaid, domain.LaundryWashing, base)

	from := base.Add(-time.Hour)
	to := base.Add(time.Hour)
	after := base.Add(2 * time.Hour)

	tests := []struct {
		name string
		crit records.Criteria
		want bool
	}{
		{name: "empty criteria matches everything", crit: records.Criteria{}, want: true},
		{name: "search case-insensitive substring", crit: records.Criteria{Search: "maria"}, want: true},
		{name: "search miss", crit: records.Criteria{Search: "juan"}, want: false},
		{name: "date inside range", crit: records.Criteria{DateFrom: &from, DateTo: &to}, want: true},
		{name: "date before range", crit: records.Criteria{DateFrom: &after}, want: false},
		{name: "payment hit", crit: records.Criteria{Payment: []domain.PaymentStatus{domain.PaymentPaid}}, want: true},
		{name: "payment miss", crit: records.Criteria{Payment: []domain.PaymentStatus{domain.PaymentUnpaid}}, want: false},
		{
			name: "all criteria conjunctive",
			crit: records.Criteria{
				Search:  "santos",
				Payment: []domain.PaymentStatus{domain.PaymentPaid},
				Laundry: []domain.LaundryStatus{domain.LaundryWashing, domain.LaundryDrying},
			},
			want: true,
		},
		{
			name: "one failing criterion rejects",
			crit: records.Criteria{
				Search:  "santos",
				Laundry: []domain.LaundryStatus{domain.LaundryDone},
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.crit.Matches(rec))
		})
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := []domain.Transaction{
		tx("Ana", domain.PaymentPaid, domain.LaundryDone, base),
		tx("Ben", domain.PaymentUnpaid, domain.LaundryPending, base.Add(time.Hour)),
	}

	got := records.Filter(recs, records.Criteria{})
	assert.Equal(t, recs, got)
}

// Fifty orders, half unpaid: the unpaid filter keeps exactly the unpaid
// half and drops the rest.
func TestFilter_UnpaidSubset(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]domain.Transaction, 0, 50)
	for i := 0; i < 50; i++ {
		payment := domain.PaymentPaid
		if i%2 == 0 {
			payment = domain.PaymentUnpaid
		}
		recs = append(recs, tx(
			fmt.Sprintf("Customer %02d", i),
			payment,
			domain.LaundryPending,
			base.Add(time.Duration(i)*time.Minute),
		))
	}

	got := records.Filter(recs, records.Criteria{
		Payment: []domain.PaymentStatus{domain.PaymentUnpaid},
	})

	require.Len(t, got, 25)
	for _, r := range got {
		assert.Equal(t, domain.PaymentUnpaid, r.PaymentStatus)
	}
}

func TestSort(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := []domain.Transaction{
		tx("charlie", domain.PaymentPaid, domain.LaundryDone, base.Add(2*time.Hour)),
		tx("Alice", domain.PaymentPaid, domain.LaundryDone, base),
		tx("bob", domain.PaymentPaid, domain.LaundryDone, base.Add(time.Hour)),
	}

	byName := records.Sort(recs, records.SortByName, records.Ascending)
	assert.Equal(t, []string{"Alice", "bob", "charlie"},
		[]string{byName[0].CustomerName, byName[1].CustomerName, byName[2].CustomerName},
		"name sort ignores case")

	byDate := records.Sort(recs, records.SortByDate, records.Descending)
	assert.Equal(t, "charlie", byDate[0].CustomerName)
	assert.Equal(t, "Alice", byDate[2].CustomerName)

	// Input untouched
	assert.Equal(t, "charlie", recs[0].CustomerName)
}

func TestSort_StableOnTies(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := []domain.Transaction{
		{CustomerName: "Ana", InvoiceNo: "SW-1", Loads: 2, CreatedAt: base},
		{CustomerName: "Ana", InvoiceNo: "SW-2", Loads: 2, CreatedAt: base},
		{CustomerName: "Ana", InvoiceNo: "SW-3", Loads: 2, CreatedAt: base},
	}

	got := records.Sort(recs, records.SortByLoads, records.Ascending)
	assert.Equal(t, "SW-1", got[0].InvoiceNo)
	assert.Equal(t, "SW-2", got[1].InvoiceNo)
	assert.Equal(t, "SW-3", got[2].InvoiceNo)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, records.TotalPages(0, 10), "empty set still has one page")
	assert.Equal(t, 1, records.TotalPages(10, 10))
	assert.Equal(t, 2, records.TotalPages(11, 10))
	assert.Equal(t, 5, records.TotalPages(50, 10))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, records.ClampPage(0, 5))
	assert.Equal(t, 1, records.ClampPage(-3, 5))
	assert.Equal(t, 3, records.ClampPage(3, 5))
	assert.Equal(t, 5, records.ClampPage(9, 5))
}

func TestPaginate(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]domain.Transaction, 0, 25)
	for i := 0; i < 25; i++ {
		recs = append(recs, tx(
			fmt.Sprintf("Customer %02d", i),
			domain.PaymentPaid,
			domain.LaundryDone,
			base.Add(time.Duration(i)*time.Minute),
		))
	}

	first := records.Paginate(recs, 1, 10)
	assert.Len(t, first.Rows, 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, "Customer 00", first.Rows[0].CustomerName)

	last := records.Paginate(recs, 3, 10)
	assert.Len(t, last.Rows, 5)

	// Out-of-range page clamps to the last page instead of returning empty
	clamped := records.Paginate(recs, 99, 10)
	assert.Len(t, clamped.Rows, 5)
	assert.Equal(t, "Customer 24", clamped.Rows[4].CustomerName)
}

// The pipeline always filters first, then sorts, then pages: the page is
// cut from the filtered-and-sorted set, not the raw one.
func TestApply_PipelineOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]domain.Transaction, 0, 30)
	for i := 0; i < 30; i++ {
		payment := domain.PaymentPaid
		if i < 12 {
			payment = domain.PaymentUnpaid
		}
		recs = append(recs, tx(
			fmt.Sprintf("Customer %02d", i),
			payment,
			domain.LaundryPending,
			base.Add(time.Duration(i)*time.Minute),
		))
	}

	page := records.Apply(recs,
		records.Criteria{Payment: []domain.PaymentStatus{domain.PaymentUnpaid}},
		records.SortByDate, records.Descending,
		2, 10)

	require.Equal(t, 2, page.TotalPages, "12 unpaid rows at 10 per page")
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "Customer 01", page.Rows[0].CustomerName)
	assert.Equal(t, "Customer 00", page.Rows[1].CustomerName)
}

// Running the same pipeline twice over the same input gives the same
// result.
func TestApply_Reproducible(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recs := []domain.Transaction{
		tx("Ana", domain.PaymentPaid, domain.LaundryDone, base),
		tx("ana", domain.PaymentUnpaid, domain.LaundryPending, base),
		tx("ANA", domain.PaymentPaid, domain.LaundryWashing, base),
	}

	first := records.Apply(recs, records.Criteria{}, records.SortByName, records.Ascending, 1, 10)
	second := records.Apply(recs, records.Criteria{}, records.SortByName, records.Ascending, 1, 10)
	assert.Equal(t, first, second)
}

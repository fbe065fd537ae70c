package records

import (
	"time"

	"starwash-api/internal/core/domain"
)

// Table tracks a transaction table's working state: loaded records, active
// filters, sort column and page. Any filter or sort change snaps the pager
// back to page 1; moving between pages leaves the filters alone.
type Table struct {
	records  []domain.Transaction
	crit     Criteria
	key      SortKey
	dir      Direction
	page     int
	pageSize int
}

// NewTable creates a table with a fixed page size, sorted newest-first.
func NewTable(pageSize int) *Table {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Table{
		key:      SortByDate,
		dir:      Descending,
		page:     1,
		pageSize: pageSize,
	}
}

// SetRecords replaces the loaded records, keeping filters and sort.
func (t *Table) SetRecords(recs []domain.Transaction) {
	t.records = recs
	t.page = 1
}

// SetSearch updates the free-text filter.
func (t *Table) SetSearch(q string) {
	t.crit.Search = q
	t.page = 1
}

// SetDateRange updates the inclusive creation-date bounds.
func (t *Table) SetDateRange(from, to *time.Time) {
	t.crit.DateFrom = from
	t.crit.DateTo = to
	t.page = 1
}

// SetPaymentFilter updates the payment-status selection.
func (t *Table) SetPaymentFilter(sel []domain.PaymentStatus) {
	t.crit.Payment = sel
	t.page = 1
}

// SetLaundryFilter updates the laundry-status selection.
func (t *Table) SetLaundryFilter(sel []domain.LaundryStatus) {
	t.crit.Laundry = sel
	t.page = 1
}

// SetPickupFilter updates the pickup-status selection.
func (t *Table) SetPickupFilter(sel []domain.PickupStatus) {
	t.crit.Pickup = sel
	t.page = 1
}

// SortBy selects a sort column. Re-selecting the active column flips the
// direction; a new column starts ascending.
func (t *Table) SortBy(key SortKey) {
	if key == t.key {
		if t.dir == Ascending {
			t.dir = Descending
		} else {
			t.dir = Ascending
		}
	} else {
		t.key = key
		t.dir = Ascending
	}
	t.page = 1
}

// Sort returns the active sort column and direction.
func (t *Table) Sort() (SortKey, Direction) {
	return t.key, t.dir
}

// SetPage moves the pager, clamped to the filtered result's page range.
func (t *Table) SetPage(page int) {
	total := TotalPages(len(Filter(t.records, t.crit)), t.pageSize)
	t.page = ClampPage(page, total)
}

// Page returns the current page number.
func (t *Table) Page() int {
	return t.page
}

// View materializes the current page of rows.
func (t *Table) View() Page {
	return Apply(t.records, t.crit, t.key, t.dir, t.page, t.pageSize)
}

// Package records transforms in-memory transaction lists for table display:
// filter, then sort, then paginate, in that order. The functions are pure;
// callers own the slice they pass in and get fresh slices back.
package records

import (
	"sort"
	"strings"
	"time"

	"starwash-api/internal/core/domain"
)

// SortKey identifies a sortable transaction column
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByService SortKey = "service"
	SortByLoads   SortKey = "loads"
	SortByPrice   SortKey = "price"
	SortByDate    SortKey = "date"
	SortByInvoice SortKey = "invoice"
)

// Direction of a sort
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Criteria holds the combined table filters. An empty status slice means
// "no filter on that dimension", never "match nothing". Nil date bounds
// leave that side of the range open.
type Criteria struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Payment  []domain.PaymentStatus
	Laundry  []domain.LaundryStatus
	Pickup   []domain.PickupStatus
}

// Page is one screen of rows plus the page count for the pager
type Page struct {
	Rows       []domain.Transaction
	TotalPages int
}

// Matches reports whether a record passes every active criterion.
func (c Criteria) Matches(t domain.Transaction) bool {
	if c.Search != "" &&
		!strings.Contains(strings.ToLower(t.CustomerName), strings.ToLower(c.Search)) {
		return false
	}
	if c.DateFrom != nil && t.CreatedAt.Before(*c.DateFrom) {
		return false
	}
	if c.DateTo != nil && t.CreatedAt.After(*c.DateTo) {
		return false
	}
	if !containsOrEmpty(c.Payment, t.PaymentStatus) {
		return false
	}
	if !containsOrEmpty(c.Laundry, t.LaundryStatus) {
		return false
	}
	return containsOrEmpty(c.Pickup, t.PickupStatus)
}

func containsOrEmpty[T comparable](set []T, v T) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Filter returns the records matching the criteria, in input order.
func Filter(recs []domain.Transaction, crit Criteria) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(recs))
	for _, t := range recs {
		if crit.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a sorted copy. String keys compare case-insensitively and
// the date key compares timestamps. Ties keep input order (stable sort),
// which makes the result reproducible for identical input.
func Sort(recs []domain.Transaction, key SortKey, dir Direction) []domain.Transaction {
	out := make([]domain.Transaction, len(recs))
	copy(out, recs)

	sort.SliceStable(out, func(i, j int) bool {
		less := lessByKey(out[i], out[j], key)
		if dir == Descending {
			return lessByKey(out[j], out[i], key)
		}
		return less
	})
	return out
}

func lessByKey(a, b domain.Transaction, key SortKey) bool {
	switch key {
	case SortByName:
		return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
	case SortByService:
		return strings.ToLower(a.ServiceType) < strings.ToLower(b.ServiceType)
	case SortByLoads:
		return a.Loads < b.Loads
	case SortByPrice:
		return a.Price < b.Price
	case SortByInvoice:
		return strings.ToLower(a.InvoiceNo) < strings.ToLower(b.InvoiceNo)
	default: // SortByDate
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// TotalPages returns the page count for a result size, never below 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage forces a requested page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices one page out of the records. Out-of-range pages clamp
// rather than slicing past the end.
func Paginate(recs []domain.Transaction, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(recs), pageSize)
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	if start > len(recs) {
		start = len(recs)
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}

	return Page{Rows: recs[start:end], TotalPages: total}
}

// Apply runs the full pipeline: filter, sort, paginate.
func Apply(recs []domain.Transaction, crit Criteria, key SortKey, dir Direction, page, pageSize int) Page {
	return Paginate(Sort(Filter(recs, crit), key, dir), page, pageSize)
}

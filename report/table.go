package report

import (
	"sort"
	"time"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 50

// PageWindowSize is the number of page buttons shown around the
// current page.
const PageWindowSize = 5

// PageEllipsis marks a gap in a page window.
const PageEllipsis = 0

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Table holds the view state of the invoice table: sort order, current
// page, and which rows are expanded. It never owns the records; sorted
// pages are derived on demand from whatever collection the caller
// passes in.
type Table struct {
	SortKey   string
	Direction SortDirection
	Page      int // 1-based
	expanded  map[string]struct{}
}

// NewTable returns table state with the default sort (newest issue
// date first) on page 1.
func NewTable() *Table {
	return &Table{
		SortKey:   "issueDate",
		Direction: SortDesc,
		Page:      1,
		expanded:  make(map[string]struct{}),
	}
}

// SetSort sorts by the given key, toggling direction when the key is
// already active. Any sort change resets to page 1; expanded rows are
// left alone.
func (t *Table) SetSort(key string) {
	if t.SortKey == key {
		if t.Direction == SortAsc {
			t.Direction = SortDesc
		} else {
			t.Direction = SortAsc
		}
	} else {
		t.SortKey = key
		t.Direction = SortAsc
	}
	t.Page = 1
}

// SetPage moves to the given page (clamped to [1, totalPages]) and
// collapses every expanded row.
func (t *Table) SetPage(page, totalPages int) {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	t.Page = page
	t.expanded = make(map[string]struct{})
}

// ToggleRow expands a collapsed row or collapses an expanded one.
func (t *Table) ToggleRow(id string) {
	if _, ok := t.expanded[id]; ok {
		delete(t.expanded, id)
	} else {
		t.expanded[id] = struct{}{}
	}
}

// IsExpanded reports whether the given row shows its detail view.
func (t *Table) IsExpanded(id string) bool {
	_, ok := t.expanded[id]
	return ok
}

// ExpandedIDs returns the expanded row ids in no particular order.
func (t *Table) ExpandedIDs() []string {
	ids := make([]string, 0, len(t.expanded))
	for id := range t.expanded {
		ids = append(ids, id)
	}
	return ids
}

// SortRecords returns a sorted copy of the records. Amount sorts
// numerically, the date keys chronologically, everything else as
// case-sensitive strings. The sort is stable: records with equal keys
// keep their relative order.
func SortRecords(records []model.Invoice, key string, dir SortDirection) []model.Invoice {
	out := make([]model.Invoice, len(records))
	copy(out, records)

	var less func(i, j int) bool
	switch key {
	case "amount":
		less = func(i, j int) bool { return out[i].Amount.LessThan(out[j].Amount) }
	case "issueDate", "dueDate", "createdAt":
		less = func(i, j int) bool { return dateKey(&out[i], key).Before(dateKey(&out[j], key)) }
	default:
		less = func(i, j int) bool { return stringKey(&out[i], key) < stringKey(&out[j], key) }
	}

	if dir == SortDesc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

func dateKey(inv *model.Invoice, key string) time.Time {
	switch key {
	case "dueDate":
		return inv.DueDate
	case "createdAt":
		return inv.CreatedAt
	default:
		return inv.IssueDate
	}
}

func stringKey(inv *model.Invoice, key string) string {
	switch key {
	case "invoiceNumber":
		return inv.InvoiceNumber
	case "status":
		return string(inv.Status)
	case "client.name":
		return inv.ClientName()
	case "user.fullName":
		return inv.UserName()
	case "description":
		return inv.Description
	default:
		return ""
	}
}

// TotalPages returns the page count for the given collection size.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// Paginate slices one page out of the records. Pages are 1-based; an
// out-of-range page yields an empty slice.
func Paginate(records []model.Invoice, page int) []model.Invoice {
	if page < 1 {
		return []model.Invoice{}
	}
	start := (page - 1) * PageSize
	if start >= len(records) {
		return []model.Invoice{}
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageWindow returns the page buttons to render: a sliding window of
// PageWindowSize pages around current, with the first and last page
// always present and PageEllipsis marking gaps.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	if total <= PageWindowSize+2 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	half := PageWindowSize / 2
	start := current - half
	end := current + half
	if start < 2 {
		start = 2
		end = start + PageWindowSize - 1
	}
	if end > total-1 {
		end = total - 1
		start = end - PageWindowSize + 1
		if start < 2 {
			start = 2
		}
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, PageEllipsis)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < total-1 {
		pages = append(pages, PageEllipsis)
	}
	return append(pages, total)
}

// TruncateWallet shortens a wallet address to first6…last4 for the
// expanded row detail. Short values pass through unchanged.
func TruncateWallet(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

package report

import (
	"github.com/chuta/celo-invoice-app-sub000/model"
)

// FilterStore holds the current filter spec and derives everything the
// UI binds to: validation state, the filtered collection, a summary of
// active filters. It is a plain state container; any reactive layer
// can wrap it. Not safe for concurrent use.
type FilterStore struct {
	filters    FilterSpec
	validation Validation

	// memoized filtered view, keyed on reference identity of the last
	// input collection and spec
	lastRecords []model.Invoice
	lastResult  []model.Invoice
	haveResult  bool
}

// NewFilterStore starts with the all-open default spec.
func NewFilterStore() *FilterStore {
	s := &FilterStore{}
	s.Reset()
	return s
}

// Filters returns the current spec.
func (s *FilterStore) Filters() FilterSpec { return s.filters }

// Validation returns the validation state of the current spec.
func (s *FilterStore) Validation() Validation { return s.validation }

// Update replaces the filter spec and invalidates the memoized view.
func (s *FilterStore) Update(spec FilterSpec) {
	s.filters = spec
	s.validation = ValidateFilters(spec)
	s.haveResult = false
}

// Reset restores the all-open default.
func (s *FilterStore) Reset() {
	s.Update(DefaultFilters())
}

// HasActiveFilters reports whether any dimension deviates from the
// all-open default.
func (s *FilterStore) HasActiveFilters() bool {
	return !s.filters.Equal(DefaultFilters())
}

// FilteredInvoices applies the current spec to the records. When the
// spec is invalid the unfiltered input is returned unchanged so the
// view never goes blank. The result is memoized on the identity of the
// input slice; passing a new collection recomputes.
func (s *FilterStore) FilteredInvoices(records []model.Invoice) []model.Invoice {
	if !s.validation.IsValid {
		return records
	}
	if s.haveResult && sameCollection(records, s.lastRecords) {
		return s.lastResult
	}
	s.lastRecords = records
	s.lastResult = ApplyFilters(records, s.filters)
	s.haveResult = true
	return s.lastResult
}

// sameCollection reports reference identity of two slices (same backing
// array and length).
func sameCollection(a, b []model.Invoice) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// Summary renders the active filters as human-readable strings, in a
// fixed order: date range, status, amount range.
func (s *FilterStore) Summary() []string {
	var out []string

	start, end := s.filters.DateRange.Start, s.filters.DateRange.End
	switch {
	case start != nil && end != nil:
		out = append(out, start.Format(dateLayout)+" – "+end.Format(dateLayout))
	case start != nil:
		out = append(out, "From "+start.Format(dateLayout))
	case end != nil:
		out = append(out, "Until "+end.Format(dateLayout))
	}

	if active(s.filters.Status) {
		out = append(out, "Status: "+s.filters.Status)
	}

	min, max := s.filters.AmountRange.Min, s.filters.AmountRange.Max
	switch {
	case min != "" && max != "":
		out = append(out, min+" – "+max)
	case min != "":
		out = append(out, "≥ "+min)
	case max != "":
		out = append(out, "≤ "+max)
	}

	return out
}

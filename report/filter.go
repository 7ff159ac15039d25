// Package report implements the client-facing reporting subsystem:
// in-memory filtering of invoice collections, aggregate statistics,
// sortable/paginated table state, and CSV/XLSX/PDF export encoders.
// Everything in this package is a synchronous pure computation; the
// surrounding controller owns I/O and state lifetimes.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// FilterAll is the open value for the status, client, and user
// dimensions of a filter spec.
const FilterAll = "all"

// DateRange bounds IssueDate inclusively. Either end may be open.
type DateRange struct {
	Start *time.Time `form:"start" json:"start"`
	End   *time.Time `form:"end" json:"end"`
}

// AmountRange bounds Amount inclusively. The bounds are kept as the raw
// strings the UI sends; empty means open. Validation rejects anything
// that is not a non-negative number.
type AmountRange struct {
	Min string `form:"min" json:"min"`
	Max string `form:"max" json:"max"`
}

// FilterSpec is a multi-field filter over an invoice collection.
type FilterSpec struct {
	DateRange   DateRange   `form:"dateRange" json:"dateRange"`
	Status      string      `form:"status" json:"status"`
	ClientID    string      `form:"clientId" json:"clientId"`
	UserID      string      `form:"userId" json:"userId"`
	AmountRange AmountRange `form:"amountRange" json:"amountRange"`
}

// DefaultFilters returns the all-open spec.
func DefaultFilters() FilterSpec {
	return FilterSpec{
		Status:   FilterAll,
		ClientID: FilterAll,
		UserID:   FilterAll,
	}
}

// Equal reports whether two specs select the same records.
func (f FilterSpec) Equal(other FilterSpec) bool {
	return timePtrEqual(f.DateRange.Start, other.DateRange.Start) &&
		timePtrEqual(f.DateRange.End, other.DateRange.End) &&
		f.Status == other.Status &&
		f.ClientID == other.ClientID &&
		f.UserID == other.UserID &&
		f.AmountRange == other.AmountRange
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Validation is the result of checking a filter spec for
// well-formedness. Errors is keyed by filter dimension.
type Validation struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// ValidateFilters checks a filter spec before it may be applied. An
// invalid spec must never be handed to ApplyFilters; callers fall back
// to the unfiltered collection and surface the per-field messages.
func ValidateFilters(spec FilterSpec) Validation {
	errs := make(map[string]string)

	if spec.DateRange.Start != nil && spec.DateRange.End != nil &&
		spec.DateRange.Start.After(*spec.DateRange.End) {
		errs["dateRange"] = "Start date must not be after end date"
	}

	min, minErr := parseAmountBound(spec.AmountRange.Min)
	max, maxErr := parseAmountBound(spec.AmountRange.Max)
	switch {
	case minErr != nil || maxErr != nil:
		errs["amountRange"] = "Amounts must be numeric"
	case (min != nil && min.IsNegative()) || (max != nil && max.IsNegative()):
		errs["amountRange"] = "Amounts must not be negative"
	case min != nil && max != nil && min.GreaterThan(*max):
		errs["amountRange"] = "Minimum amount must not exceed maximum amount"
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

// parseAmountBound parses an amount bound. Empty means "open" and
// yields a nil decimal without error.
func parseAmountBound(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ApplyFilters selects the records matching every active dimension of
// the spec. The output preserves input order; a nil collection yields
// an empty slice. Bounds that fail to parse are treated as open, which
// cannot happen for specs that passed ValidateFilters.
func ApplyFilters(records []model.Invoice, spec FilterSpec) []model.Invoice {
	out := make([]model.Invoice, 0, len(records))
	if len(records) == 0 {
		return out
	}

	min, _ := parseAmountBound(spec.AmountRange.Min)
	max, _ := parseAmountBound(spec.AmountRange.Max)

	for _, rec := range records {
		if spec.DateRange.Start != nil && rec.IssueDate.Before(*spec.DateRange.Start) {
			continue
		}
		if spec.DateRange.End != nil && rec.IssueDate.After(*spec.DateRange.End) {
			continue
		}
		if spec.Status != FilterAll && spec.Status != "" && string(rec.Status) != spec.Status {
			continue
		}
		if spec.ClientID != FilterAll && spec.ClientID != "" && rec.ClientID != spec.ClientID {
			continue
		}
		if spec.UserID != FilterAll && spec.UserID != "" && rec.UserID != spec.UserID {
			continue
		}
		if min != nil && rec.Amount.LessThan(*min) {
			continue
		}
		if max != nil && rec.Amount.GreaterThan(*max) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

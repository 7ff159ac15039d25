package report_test

import (
	"testing"
	"time"

	"github.com/chuta/celo-invoice-app-sub000/fixtures"
	"github.com/chuta/celo-invoice-app-sub000/model"
	"github.com/chuta/celo-invoice-app-sub000/report"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		spec    report.FilterSpec
		valid   bool
		errKeys []string
	}{
		{
			name:  "default spec is valid",
			spec:  report.DefaultFilters(),
			valid: true,
		},
		{
			name: "open-ended date range is valid",
			spec: report.FilterSpec{
				DateRange: report.DateRange{Start: datePtr(2026, 1, 1)},
				Status:    report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
			},
			valid: true,
		},
		{
			name: "start after end",
			spec: report.FilterSpec{
				DateRange: report.DateRange{Start: datePtr(2026, 5, 1), End: datePtr(2026, 1, 1)},
				Status:    report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
			},
			valid:   false,
			errKeys: []string{"dateRange"},
		},
		{
			name: "min above max",
			spec: report.FilterSpec{
				Status: report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
				AmountRange: report.AmountRange{Min: "100", Max: "50"},
			},
			valid:   false,
			errKeys: []string{"amountRange"},
		},
		{
			name: "negative amount",
			spec: report.FilterSpec{
				Status: report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
				AmountRange: report.AmountRange{Min: "-5"},
			},
			valid:   false,
			errKeys: []string{"amountRange"},
		},
		{
			name: "non-numeric amount",
			spec: report.FilterSpec{
				Status: report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
				AmountRange: report.AmountRange{Max: "lots"},
			},
			valid:   false,
			errKeys: []string{"amountRange"},
		},
		{
			name: "both dimensions broken",
			spec: report.FilterSpec{
				DateRange: report.DateRange{Start: datePtr(2026, 5, 1), End: datePtr(2026, 1, 1)},
				Status:    report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
				AmountRange: report.AmountRange{Min: "9", Max: "1"},
			},
			valid:   false,
			errKeys: []string{"dateRange", "amountRange"},
		},
		{
			name: "decimal bounds in order are valid",
			spec: report.FilterSpec{
				Status: report.FilterAll, ClientID: report.FilterAll, UserID: report.FilterAll,
				AmountRange: report.AmountRange{Min: "10.50", Max: "20.25"},
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := report.ValidateFilters(tt.spec)
			if v.IsValid != tt.valid {
				t.Fatalf("IsValid = %v, want %v (errors: %v)", v.IsValid, tt.valid, v.Errors)
			}
			if len(v.Errors) != len(tt.errKeys) {
				t.Fatalf("got %d errors (%v), want %d", len(v.Errors), v.Errors, len(tt.errKeys))
			}
			for _, key := range tt.errKeys {
				if v.Errors[key] == "" {
					t.Errorf("missing error for %q", key)
				}
			}
		})
	}
}

func TestApplyFilters(t *testing.T) {
	records := []model.Invoice{
		*fixtures.Invoice(fixtures.WithNumber("A-1"), fixtures.WithAmount(50),
			fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithIssueDate(date(2026, 1, 15)),
			fixtures.WithClient("c1", "Acme", "acme@example.com"),
			fixtures.WithUser("u1", "Jane Doe", "jane@example.com")),
		*fixtures.Invoice(fixtures.WithNumber("A-2"), fixtures.WithAmount(150),
			fixtures.WithStatus(model.InvoiceStatusPending),
			fixtures.WithIssueDate(date(2026, 2, 15)),
			fixtures.WithClient("c2", "Globex", "globex@example.com"),
			fixtures.WithUser("u1", "Jane Doe", "jane@example.com")),
		*fixtures.Invoice(fixtures.WithNumber("A-3"), fixtures.WithAmount(250),
			fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithIssueDate(date(2026, 3, 15)),
			fixtures.WithClient("c1", "Acme", "acme@example.com"),
			fixtures.WithUser("u2", "Bob Roe", "bob@example.com")),
	}

	all := report.DefaultFilters()

	tests := []struct {
		name        string
		spec        report.FilterSpec
		wantNumbers []string
	}{
		{
			name:        "open spec keeps everything in order",
			spec:        all,
			wantNumbers: []string{"A-1", "A-2", "A-3"},
		},
		{
			name: "status filter",
			spec: func() report.FilterSpec {
				s := all
				s.Status = "paid"
				return s
			}(),
			wantNumbers: []string{"A-1", "A-3"},
		},
		{
			name: "client filter",
			spec: func() report.FilterSpec {
				s := all
				s.ClientID = "c2"
				return s
			}(),
			wantNumbers: []string{"A-2"},
		},
		{
			name: "user filter",
			spec: func() report.FilterSpec {
				s := all
				s.UserID = "u1"
				return s
			}(),
			wantNumbers: []string{"A-1", "A-2"},
		},
		{
			name: "date range is inclusive",
			spec: func() report.FilterSpec {
				s := all
				s.DateRange = report.DateRange{Start: datePtr(2026, 1, 15), End: datePtr(2026, 2, 15)}
				return s
			}(),
			wantNumbers: []string{"A-1", "A-2"},
		},
		{
			name: "amount bounds are inclusive",
			spec: func() report.FilterSpec {
				s := all
				s.AmountRange = report.AmountRange{Min: "150", Max: "250"}
				return s
			}(),
			wantNumbers: []string{"A-2", "A-3"},
		},
		{
			name: "all dimensions combined",
			spec: func() report.FilterSpec {
				s := all
				s.Status = "paid"
				s.ClientID = "c1"
				s.AmountRange = report.AmountRange{Min: "100"}
				return s
			}(),
			wantNumbers: []string{"A-3"},
		},
		{
			name: "no match",
			spec: func() report.FilterSpec {
				s := all
				s.Status = "voided"
				return s
			}(),
			wantNumbers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.ApplyFilters(records, tt.spec)
			if len(got) != len(tt.wantNumbers) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantNumbers))
			}
			for i, want := range tt.wantNumbers {
				if got[i].InvoiceNumber != want {
					t.Errorf("record %d = %s, want %s", i, got[i].InvoiceNumber, want)
				}
			}
			if tt.spec.Status != report.FilterAll {
				for _, rec := range got {
					if string(rec.Status) != tt.spec.Status {
						t.Errorf("record %s has status %s, want %s", rec.InvoiceNumber, rec.Status, tt.spec.Status)
					}
				}
			}
		})
	}
}

func TestApplyFiltersNilCollection(t *testing.T) {
	got := report.ApplyFilters(nil, report.DefaultFilters())
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

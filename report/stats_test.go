package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chuta/celo-invoice-app-sub000/fixtures"
	"github.com/chuta/celo-invoice-app-sub000/model"
	"github.com/chuta/celo-invoice-app-sub000/report"
)

var statsNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestCalculateStatisticsEmpty(t *testing.T) {
	stats := report.CalculateStatistics(nil, statsNow)

	if stats.TotalInvoices != 0 {
		t.Errorf("TotalInvoices = %d, want 0", stats.TotalInvoices)
	}
	if !stats.TotalRevenue.IsZero() {
		t.Errorf("TotalRevenue = %s, want 0", stats.TotalRevenue)
	}
	if !stats.AverageAmount.IsZero() {
		t.Errorf("AverageAmount = %s, want 0", stats.AverageAmount)
	}
	if len(stats.StatusDistribution) != 0 {
		t.Errorf("StatusDistribution = %v, want empty", stats.StatusDistribution)
	}
	if len(stats.TopClients) != 0 {
		t.Errorf("TopClients = %v, want empty", stats.TopClients)
	}
	if len(stats.MonthlyTrends) != report.TrendMonths {
		t.Fatalf("MonthlyTrends has %d entries, want %d", len(stats.MonthlyTrends), report.TrendMonths)
	}
	for _, trend := range stats.MonthlyTrends {
		if trend.InvoiceCount != 0 || !trend.TotalAmount.IsZero() {
			t.Errorf("trend %s not zeroed: %+v", trend.Month, trend)
		}
	}
}

func TestCalculateStatisticsRevenueSplit(t *testing.T) {
	records := []model.Invoice{
		*fixtures.Invoice(fixtures.WithAmount(100.50), fixtures.WithStatus(model.InvoiceStatusPaid)),
		*fixtures.Invoice(fixtures.WithAmount(250.75), fixtures.WithStatus(model.InvoiceStatusPending)),
		*fixtures.Invoice(fixtures.WithAmount(75.25), fixtures.WithStatus(model.InvoiceStatusApproved)),
	}

	stats := report.CalculateStatistics(records, statsNow)

	if stats.TotalInvoices != 3 {
		t.Errorf("TotalInvoices = %d, want 3", stats.TotalInvoices)
	}
	wantRevenue := decimal.RequireFromString("175.75")
	if !stats.TotalRevenue.Equal(wantRevenue) {
		t.Errorf("TotalRevenue = %s, want %s", stats.TotalRevenue, wantRevenue)
	}
	// Average covers every status: (100.50+250.75+75.25)/3 = 142.166...
	wantAvg := decimal.RequireFromString("142.17")
	if !stats.AverageAmount.Round(2).Equal(wantAvg) {
		t.Errorf("AverageAmount = %s, want ~%s", stats.AverageAmount, wantAvg)
	}
	if got := stats.StatusDistribution[model.InvoiceStatusPaid]; got != 1 {
		t.Errorf("paid count = %d, want 1", got)
	}
	if got := stats.StatusDistribution[model.InvoiceStatusPending]; got != 1 {
		t.Errorf("pending count = %d, want 1", got)
	}
	if _, ok := stats.StatusDistribution[model.InvoiceStatusDraft]; ok {
		t.Error("StatusDistribution contains absent status draft")
	}
}

func TestCalculateStatisticsTopClients(t *testing.T) {
	records := []model.Invoice{
		*fixtures.Invoice(fixtures.WithAmount(100), fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithClient("c1", "Acme", "")),
		*fixtures.Invoice(fixtures.WithAmount(300), fixtures.WithStatus(model.InvoiceStatusApproved),
			fixtures.WithClient("c2", "Globex", "")),
		*fixtures.Invoice(fixtures.WithAmount(200), fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithClient("c1", "Acme", "")),
		// pending contributes nothing
		*fixtures.Invoice(fixtures.WithAmount(999), fixtures.WithStatus(model.InvoiceStatusPending),
			fixtures.WithClient("c3", "Initech", "")),
		// same total as c2, aggregated later: must stay behind it
		*fixtures.Invoice(fixtures.WithAmount(300), fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithClient("c4", "Umbrella", "")),
	}

	stats := report.CalculateStatistics(records, statsNow)

	if len(stats.TopClients) != 3 {
		t.Fatalf("TopClients has %d entries, want 3: %+v", len(stats.TopClients), stats.TopClients)
	}
	wantOrder := []string{"c1", "c2", "c4"}
	for i, want := range wantOrder {
		if stats.TopClients[i].ClientID != want {
			t.Errorf("TopClients[%d] = %s, want %s", i, stats.TopClients[i].ClientID, want)
		}
	}
	if stats.TopClients[0].InvoiceCount != 2 {
		t.Errorf("top client invoice count = %d, want 2", stats.TopClients[0].InvoiceCount)
	}
	if stats.TopClients[0].ClientName != "Acme" {
		t.Errorf("top client name = %q, want Acme", stats.TopClients[0].ClientName)
	}
}

func TestCalculateStatisticsTopClientsCapped(t *testing.T) {
	var records []model.Invoice
	for i := 0; i < 8; i++ {
		records = append(records, *fixtures.Invoice(
			fixtures.WithAmount(float64(100+i)),
			fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithClient(string(rune('a'+i)), "Client", "")))
	}

	stats := report.CalculateStatistics(records, statsNow)
	if len(stats.TopClients) != report.TopClientCount {
		t.Fatalf("TopClients has %d entries, want %d", len(stats.TopClients), report.TopClientCount)
	}
}

func TestCalculateStatisticsMonthlyTrends(t *testing.T) {
	records := []model.Invoice{
		*fixtures.Invoice(fixtures.WithAmount(100), fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithIssueDate(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))),
		*fixtures.Invoice(fixtures.WithAmount(50), fixtures.WithStatus(model.InvoiceStatusApproved),
			fixtures.WithIssueDate(time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC))),
		// outside the trailing window
		*fixtures.Invoice(fixtures.WithAmount(999), fixtures.WithStatus(model.InvoiceStatusPaid),
			fixtures.WithIssueDate(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))),
		// wrong status
		*fixtures.Invoice(fixtures.WithAmount(999), fixtures.WithStatus(model.InvoiceStatusPending),
			fixtures.WithIssueDate(time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC))),
	}

	stats := report.CalculateStatistics(records, statsNow)

	wantMonths := []string{"Jan 2026", "Feb 2026", "Mar 2026", "Apr 2026", "May 2026", "Jun 2026"}
	if len(stats.MonthlyTrends) != len(wantMonths) {
		t.Fatalf("MonthlyTrends has %d entries, want %d", len(stats.MonthlyTrends), len(wantMonths))
	}
	for i, want := range wantMonths {
		if stats.MonthlyTrends[i].Month != want {
			t.Errorf("trend %d month = %q, want %q", i, stats.MonthlyTrends[i].Month, want)
		}
	}

	jun := stats.MonthlyTrends[5]
	if jun.InvoiceCount != 1 || !jun.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("June trend = %+v, want 1 invoice / 100", jun)
	}
	apr := stats.MonthlyTrends[3]
	if apr.InvoiceCount != 1 || !apr.TotalAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("April trend = %+v, want 1 invoice / 50", apr)
	}
}

func TestPercentageChange(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name     string
		current  decimal.Decimal
		previous decimal.Decimal
		want     string
		dir      report.TrendDirection
	}{
		{"rise", d(120), d(100), "20", report.TrendUp},
		{"fall", d(80), d(100), "20", report.TrendDown},
		{"from zero", d(100), d(0), "100", report.TrendUp},
		{"zero to zero", d(0), d(0), "0", report.TrendNeutral},
		{"equal", d(100), d(100), "0", report.TrendNeutral},
		{"to zero", d(0), d(50), "100", report.TrendDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.PercentageChange(tt.current, tt.previous)
			if !got.Change.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("change = %s, want %s", got.Change, tt.want)
			}
			if got.Direction != tt.dir {
				t.Errorf("direction = %s, want %s", got.Direction, tt.dir)
			}
		})
	}
}

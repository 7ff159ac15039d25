package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chuta/celo-invoice-app-sub000/fixtures"
	"github.com/chuta/celo-invoice-app-sub000/report"
)

func queryContext(t *testing.T, rawQuery string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/api/reports/invoices?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindReportQueryDefaults(t *testing.T) {
	q, err := bindReportQuery(queryContext(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if q.Status != report.FilterAll || q.ClientID != report.FilterAll || q.UserID != report.FilterAll {
		t.Errorf("dimension defaults = %q/%q/%q, want all", q.Status, q.ClientID, q.UserID)
	}
	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.Sort != "issueDate" || q.Dir != "desc" {
		t.Errorf("sort defaults = %s/%s", q.Sort, q.Dir)
	}
	if q.Start != nil || q.End != nil {
		t.Error("date bounds set without query parameters")
	}
}

func TestBindReportQueryFull(t *testing.T) {
	q, err := bindReportQuery(queryContext(t,
		"start=2026-01-01&end=2026-03-31&status=paid&clientId=c1&min=50&max=200&page=3&sort=amount&dir=asc"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Start == nil || !q.Start.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", q.Start)
	}
	if q.End == nil || !q.End.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", q.End)
	}
	if q.Status != "paid" || q.ClientID != "c1" {
		t.Errorf("status/client = %s/%s", q.Status, q.ClientID)
	}
	if q.Min != "50" || q.Max != "200" {
		t.Errorf("amount bounds = %s/%s", q.Min, q.Max)
	}
	if q.Page != 3 || q.Sort != "amount" || q.Dir != "asc" {
		t.Errorf("table params = %d/%s/%s", q.Page, q.Sort, q.Dir)
	}
}

func TestBindReportQueryBadInput(t *testing.T) {
	if _, err := bindReportQuery(queryContext(t, "start=march")); err == nil {
		t.Error("unparseable date accepted")
	}

	q, err := bindReportQuery(queryContext(t, "page=-2&dir=sideways"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Page != 1 {
		t.Errorf("negative page = %d, want clamp to 1", q.Page)
	}
	if q.Dir != "desc" {
		t.Errorf("unknown direction = %q, want desc", q.Dir)
	}
}

func TestReportQueryFilterSpec(t *testing.T) {
	q := &reportQuery{
		Status:   "paid",
		ClientID: report.FilterAll,
		UserID:   report.FilterAll,
		Min:      "50",
	}
	spec := q.filterSpec()
	if spec.Status != "paid" || spec.AmountRange.Min != "50" || spec.AmountRange.Max != "" {
		t.Errorf("spec = %+v", spec)
	}
	if !report.ValidateFilters(spec).IsValid {
		t.Error("bound spec fails validation")
	}
}

func TestToAPIReportRow(t *testing.T) {
	inv := fixtures.Invoice(
		fixtures.WithNumber("INV-0007"),
		fixtures.WithAmount(99.9),
		fixtures.WithClient("c1", "Acme Corp", "billing@acme.test"),
		fixtures.WithWallet("0x1234567890abcdef1234567890abcdef12345678"),
	)
	row := toAPIReportRow(inv)
	if row.InvoiceNumber != "INV-0007" || row.Amount != "99.90" {
		t.Errorf("row = %+v", row)
	}
	if row.ClientName != "Acme Corp" || row.ClientEmail != "billing@acme.test" {
		t.Errorf("client fields = %s/%s", row.ClientName, row.ClientEmail)
	}
	if row.Wallet != "0x1234…5678" {
		t.Errorf("wallet = %q", row.Wallet)
	}
	if row.IssueDate != "2026-03-10" || row.DueDate != "2026-04-10" {
		t.Errorf("dates = %s/%s", row.IssueDate, row.DueDate)
	}
	if row.UserName != "" || row.UserEmail != "" {
		t.Error("absent user summary leaked into row")
	}
}

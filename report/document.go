package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// ErrNoData is returned when a report document is requested for an
// empty collection. Unlike the CSV encoder, which yields a sentinel
// string, the document path fails loudly.
var ErrNoData = errors.New("no data available")

// ReportAttribution is the constant footer line on every document page.
const ReportAttribution = "Generated by Celo Invoice"

// DocumentBuilder is the rendering capability the report document is
// written against. Implementations own page breaks and the per-page
// footer (page number plus attribution), so the report content reads
// as one linear sequence of blocks.
type DocumentBuilder interface {
	// AddTitle renders a prominent heading.
	AddTitle(title string)
	// AddText renders one line of body text.
	AddText(text string)
	// AddSpace inserts a small vertical gap.
	AddSpace()
	// AddTable renders a header row plus data rows, breaking across
	// pages as needed. Column widths are fixed proportions of the
	// printable width and must match the header count.
	AddTable(headers []string, widths []float64, rows [][]string)
	// Output finalizes the document and returns its bytes.
	Output() ([]byte, error)
}

// Report table columns with fixed proportional widths, independent of
// the data.
var (
	reportHeaders = []string{"Invoice #", "Client", "User", "Amount", "Status", "Issue Date", "Due Date"}
	reportWidths  = []float64{0.16, 0.19, 0.16, 0.11, 0.12, 0.13, 0.13}
)

// GenerateReportDocument writes the full report into the builder: a
// title block, the applied filters, an optional statistics summary, and
// a table of every record. Returns ErrNoData for an empty collection.
func GenerateReportDocument(b DocumentBuilder, records []model.Invoice, spec FilterSpec, stats *Statistics, now time.Time) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	b.AddTitle(ReportTitle)
	b.AddText("Generated: " + now.Format(timestampLayout))
	b.AddText(fmt.Sprintf("Total Records: %d", len(records)))
	b.AddSpace()

	if lines := activeFilterLines(records, spec); len(lines) > 0 {
		b.AddText("Applied Filters")
		for _, line := range lines {
			b.AddText("  " + line)
		}
		b.AddSpace()
	}

	if stats != nil {
		b.AddText("Summary")
		b.AddText(fmt.Sprintf("  Total Invoices: %d", stats.TotalInvoices))
		b.AddText("  Total Revenue: " + stats.TotalRevenue.StringFixed(2))
		b.AddText("  Average Amount: " + stats.AverageAmount.StringFixed(2))
		for _, status := range statusesInOrder(stats.StatusDistribution) {
			b.AddText(fmt.Sprintf("  %s: %d", status, stats.StatusDistribution[status]))
		}
		b.AddSpace()
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			rec.InvoiceNumber,
			displayOrNA(rec.ClientName()),
			displayOrNA(rec.UserName()),
			rec.Amount.StringFixed(2),
			string(rec.Status),
			rec.IssueDate.Format(dateLayout),
			rec.DueDate.Format(dateLayout),
		}
	}
	b.AddTable(reportHeaders, reportWidths, rows)

	return b.Output()
}

// statusesInOrder lists the present statuses in lifecycle order so the
// summary section is deterministic.
func statusesInOrder(dist map[model.InvoiceStatus]int) []model.InvoiceStatus {
	out := make([]model.InvoiceStatus, 0, len(dist))
	for _, s := range model.AllStatuses() {
		if _, ok := dist[s]; ok {
			out = append(out, s)
		}
	}
	if len(out) == len(dist) {
		return out
	}
	// Unknown statuses (not part of the enumeration) go last, sorted.
	known := make(map[model.InvoiceStatus]bool, len(out))
	for _, s := range out {
		known[s] = true
	}
	var rest []model.InvoiceStatus
	for s := range dist {
		if !known[s] {
			rest = append(rest, s)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

func displayOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// EmptyExportSentinel is returned instead of CSV when there is nothing
// to export. Callers must check for it before treating the result as
// CSV data.
const EmptyExportSentinel = "No data available for export"

// ReportTitle heads the metadata block of every export.
const ReportTitle = "Invoice Report"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// csvRow is one exported invoice. Field order defines column order.
type csvRow struct {
	InvoiceNumber string `csv:"Invoice Number"`
	ClientName    string `csv:"Client Name"`
	ClientEmail   string `csv:"Client Email"`
	UserName      string `csv:"User Name"`
	UserEmail     string `csv:"User Email"`
	Amount        string `csv:"Amount"`
	Status        string `csv:"Status"`
	IssueDate     string `csv:"Issue Date"`
	DueDate       string `csv:"Due Date"`
	CreatedDate   string `csv:"Created Date"`
	Description   string `csv:"Description"`
	Notes         string `csv:"Notes"`
}

// GenerateCSV renders the filtered collection as CSV: a #-prefixed
// metadata block (title, timestamp, record count, active filters), a
// blank line, a header row, and one row per record. Quoting follows
// RFC 4180; absent nested fields become empty strings. An empty
// collection yields EmptyExportSentinel instead of CSV.
func GenerateCSV(records []model.Invoice, spec FilterSpec, now time.Time) (string, error) {
	if len(records) == 0 {
		return EmptyExportSentinel, nil
	}

	var sb strings.Builder
	sb.WriteString("# " + ReportTitle + "\n")
	sb.WriteString("# Generated: " + now.Format(timestampLayout) + "\n")
	fmt.Fprintf(&sb, "# Total Records: %d\n", len(records))
	for _, line := range activeFilterLines(records, spec) {
		sb.WriteString("# " + line + "\n")
	}
	sb.WriteString("\n")

	rows := make([]csvRow, len(records))
	for i, rec := range records {
		row := csvRow{
			InvoiceNumber: rec.InvoiceNumber,
			Amount:        rec.Amount.StringFixed(2),
			Status:        string(rec.Status),
			IssueDate:     rec.IssueDate.Format(dateLayout),
			DueDate:       rec.DueDate.Format(dateLayout),
			CreatedDate:   rec.CreatedAt.Format(dateLayout),
			Description:   rec.Description,
			Notes:         rec.Notes,
		}
		if rec.Client != nil {
			row.ClientName = rec.Client.Name
			row.ClientEmail = rec.Client.Email
		}
		if rec.User != nil {
			row.UserName = rec.User.FullName
			row.UserEmail = rec.User.Email
		}
		rows[i] = row
	}

	body, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("cannot encode csv rows: %w", err)
	}
	sb.WriteString(body)
	return sb.String(), nil
}

// activeFilterLines describes each active filter dimension, resolving
// client and user names from the exported data itself.
func activeFilterLines(records []model.Invoice, spec FilterSpec) []string {
	var lines []string

	if spec.DateRange.Start != nil || spec.DateRange.End != nil {
		switch {
		case spec.DateRange.Start != nil && spec.DateRange.End != nil:
			lines = append(lines, fmt.Sprintf("Date Range: %s - %s",
				spec.DateRange.Start.Format(dateLayout), spec.DateRange.End.Format(dateLayout)))
		case spec.DateRange.Start != nil:
			lines = append(lines, "Date Range: from "+spec.DateRange.Start.Format(dateLayout))
		default:
			lines = append(lines, "Date Range: until "+spec.DateRange.End.Format(dateLayout))
		}
	}
	if active(spec.Status) {
		lines = append(lines, "Status: "+spec.Status)
	}
	if active(spec.ClientID) {
		lines = append(lines, "Client: "+resolveClientName(records, spec.ClientID))
	}
	if active(spec.UserID) {
		lines = append(lines, "User: "+resolveUserName(records, spec.UserID))
	}
	if spec.AmountRange.Min != "" || spec.AmountRange.Max != "" {
		switch {
		case spec.AmountRange.Min != "" && spec.AmountRange.Max != "":
			lines = append(lines, fmt.Sprintf("Amount Range: %s - %s", spec.AmountRange.Min, spec.AmountRange.Max))
		case spec.AmountRange.Min != "":
			lines = append(lines, "Amount Range: >= "+spec.AmountRange.Min)
		default:
			lines = append(lines, "Amount Range: <= "+spec.AmountRange.Max)
		}
	}
	return lines
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// resolveClientName finds the display name for a client id within the
// collection; "N/A" when no record carries the summary.
func resolveClientName(records []model.Invoice, clientID string) string {
	for i := range records {
		if records[i].ClientID == clientID && records[i].Client != nil {
			return records[i].Client.Name
		}
	}
	return "N/A"
}

// resolveUserName finds the display name for a user id within the
// collection; "N/A" when no record carries the summary.
func resolveUserName(records []model.Invoice, userID string) string {
	for i := range records {
		if records[i].UserID == userID && records[i].User != nil {
			return records[i].User.FullName
		}
	}
	return "N/A"
}

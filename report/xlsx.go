package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// GenerateXLSX renders the filtered collection as a workbook with an
// "Invoices" data sheet and a "Report" sheet carrying the same metadata
// as the CSV preamble. Returns ErrNoData for an empty collection.
func GenerateXLSX(records []model.Invoice, spec FilterSpec, now time.Time) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "Invoices"
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}

	header := []any{
		"Invoice Number", "Client Name", "Client Email", "User Name", "User Email",
		"Amount", "Status", "Issue Date", "Due Date", "Created Date", "Description", "Notes",
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, rec := range records {
		amount, _ := rec.Amount.Round(2).Float64()
		row := []any{
			rec.InvoiceNumber, "", "", "", "",
			amount, string(rec.Status),
			rec.IssueDate.Format(dateLayout),
			rec.DueDate.Format(dateLayout),
			rec.CreatedAt.Format(dateLayout),
			rec.Description, rec.Notes,
		}
		if rec.Client != nil {
			row[1] = rec.Client.Name
			row[2] = rec.Client.Email
		}
		if rec.User != nil {
			row[3] = rec.User.FullName
			row[4] = rec.User.Email
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const metaSheet = "Report"
	if _, err := f.NewSheet(metaSheet); err != nil {
		return nil, err
	}
	meta := [][]any{
		{ReportTitle},
		{"Generated", now.Format(timestampLayout)},
		{"Total Records", len(records)},
	}
	for _, line := range activeFilterLines(records, spec) {
		meta = append(meta, []any{line})
	}
	for i, row := range meta {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(metaSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("cannot write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFBuilder renders report blocks into an A4 portrait PDF. It
// paginates automatically and stamps every page with a page-number
// footer and the attribution line.
type PDFBuilder struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDFBuilder returns a builder with the first page already open.
func NewPDFBuilder() *PDFBuilder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.SetAutoPageBreak(true, 22)
	pdf.AliasNbPages("")

	b := &PDFBuilder{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, b.tr(ReportAttribution), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return b
}

func (b *PDFBuilder) AddTitle(title string) {
	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.CellFormat(0, 10, b.tr(title), "", 1, "L", false, 0, "")
	b.pdf.Ln(2)
}

func (b *PDFBuilder) AddText(text string) {
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.CellFormat(0, 5.5, b.tr(text), "", 1, "L", false, 0, "")
}

func (b *PDFBuilder) AddSpace() {
	b.pdf.Ln(4)
}

// AddTable draws a filled header row and one bordered row per record.
// Widths are proportions of the printable width; fpdf breaks pages
// between rows automatically.
func (b *PDFBuilder) AddTable(headers []string, widths []float64, rows [][]string) {
	left, _, right, _ := b.pdf.GetMargins()
	pageWidth, _ := b.pdf.GetPageSize()
	printable := pageWidth - left - right

	cols := make([]float64, len(widths))
	for i, w := range widths {
		cols[i] = w * printable
	}

	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		b.pdf.CellFormat(cols[i], 7, b.tr(h), "1", 0, "L", true, 0, "")
	}
	b.pdf.Ln(-1)

	b.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if headers[i] == "Amount" {
				align = "R"
			}
			b.pdf.CellFormat(cols[i], 6, b.tr(cell), "1", 0, align, false, 0, "")
		}
		b.pdf.Ln(-1)
	}
}

func (b *PDFBuilder) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("cannot render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

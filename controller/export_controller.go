package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chuta/celo-invoice-app-sub000/report"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func attachmentHeaders(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
}

// exportCSV streams the filtered collection as a CSV download. The
// encoder signals an empty collection with a sentinel string rather
// than an error, so that case is checked before any headers go out.
func (ctrl *controller) exportCSV(c echo.Context) error {
	filtered, fs, _, err := ctrl.filteredCollection(c)
	if err != nil {
		return respondAppError(c, err)
	}

	now := time.Now()
	body, err := report.GenerateCSV(filtered, fs.Filters(), now)
	if err != nil {
		return respondAppError(c, ErrInternal(err))
	}
	if body == report.EmptyExportSentinel {
		return c.JSON(http.StatusNotFound, apiError("no_data", report.EmptyExportSentinel))
	}

	attachmentHeaders(c, report.ExportFilename("", "csv", now))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

// exportXLSX streams the filtered collection as a workbook download.
func (ctrl *controller) exportXLSX(c echo.Context) error {
	filtered, fs, _, err := ctrl.filteredCollection(c)
	if err != nil {
		return respondAppError(c, err)
	}

	now := time.Now()
	data, err := report.GenerateXLSX(filtered, fs.Filters(), now)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return c.JSON(http.StatusNotFound, apiError("no_data", err.Error()))
		}
		return respondAppError(c, ErrInternal(err))
	}

	attachmentHeaders(c, report.ExportFilename("", "xlsx", now))
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

// exportPDF renders the filtered collection and its statistics as a
// PDF report. An empty collection is an error on this path, unlike the
// CSV sentinel.
func (ctrl *controller) exportPDF(c echo.Context) error {
	data, now, err := ctrl.buildReportPDF(c)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return c.JSON(http.StatusNotFound, apiError("no_data", err.Error()))
		}
		return respondAppError(c, err)
	}

	attachmentHeaders(c, report.ExportFilename("", "pdf", now))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (ctrl *controller) buildReportPDF(c echo.Context) ([]byte, time.Time, error) {
	now := time.Now()
	filtered, fs, _, err := ctrl.filteredCollection(c)
	if err != nil {
		return nil, now, err
	}
	stats := report.CalculateStatistics(filtered, now)
	data, err := report.GenerateReportDocument(report.NewPDFBuilder(), filtered, fs.Filters(), &stats, now)
	if err != nil {
		return nil, now, err
	}
	return data, now, nil
}

// exportEInvoiceXML streams one invoice as EN 16931 e-invoice XML.
func (ctrl *controller) exportEInvoiceXML(c echo.Context) error {
	ownerID := ownerIDFromContext(c)
	inv, err := ctrl.model.LoadInvoice(c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, apiError("not_found", "invoice not found"))
		}
		return c.JSON(http.StatusInternalServerError, apiError("db_error", "could not load invoice"))
	}

	var buf bytes.Buffer
	if err := ctrl.model.WriteEInvoiceXML(inv, ownerID, &buf); err != nil {
		ctrl.logger.Error("cannot build e-invoice", "invoice", inv.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, apiError("einvoice_error", "could not build e-invoice"))
	}

	attachmentHeaders(c, fmt.Sprintf("einvoice-%s.xml", inv.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/xml", buf.Bytes())
}

// reportPreviewPNG renders the first page of the report PDF as a PNG.
// Only available in cgo builds; others get 501.
func (ctrl *controller) reportPreviewPNG(c echo.Context) error {
	data, _, err := ctrl.buildReportPDF(c)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return c.JSON(http.StatusNotFound, apiError("no_data", err.Error()))
		}
		return respondAppError(c, err)
	}

	png, err := renderPDFPageToPNG(data, 144)
	if err != nil {
		return c.JSON(http.StatusNotImplemented, apiError("preview_unavailable", err.Error()))
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

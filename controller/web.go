package controller

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

type appError struct {
	Code   string // stable, internal error code for ops/support
	Status int    // matching HTTP status
	Err    error  // original error (never handed to the client)
	Public string // safe text for users (optional)
}

func (e *appError) Error() string { return fmt.Sprintf("%s: %v", e.Code, e.Err) }
func (e *appError) Unwrap() error { return e.Err }

func ErrNotFound(err error) *appError {
	return &appError{Code: "NOT_FOUND", Status: http.StatusNotFound, Err: err}
}
func ErrInvalid(err error, public string) *appError {
	return &appError{Code: "INVALID_INPUT", Status: http.StatusBadRequest, Err: err, Public: public}
}
func ErrInternal(err error) *appError {
	return &appError{Code: "INTERNAL", Status: http.StatusInternalServerError, Err: err}
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func apiError(code, msg string) *APIError { return &APIError{Code: code, Message: msg} }

type controller struct {
	model  *model.Store
	logger *slog.Logger
}

// NewController wires all routes and starts the HTTP server. It blocks
// until the server shuts down.
func NewController(store *model.Store) error {
	ctrl := &controller{
		model:  store,
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(store.Config.CookieSecret))))

	e.POST("/api/login", ctrl.login)
	e.POST("/api/logout", ctrl.logout)

	api := e.Group("/api", ctrl.RequireLogin)
	api.GET("/invoices", ctrl.apiInvoiceList)
	api.GET("/invoices/:id", ctrl.apiInvoiceGet)
	api.GET("/invoices/:id/einvoice.xml", ctrl.exportEInvoiceXML)
	api.POST("/invoices/:id/submit", ctrl.invoiceTransition(store.SubmitInvoice))
	api.POST("/invoices/:id/approve", ctrl.adminOnly(ctrl.invoiceTransition(store.ApproveInvoice)))
	api.POST("/invoices/:id/reject", ctrl.adminOnly(ctrl.invoiceTransition(store.RejectInvoice)))
	api.POST("/invoices/:id/pay", ctrl.adminOnly(ctrl.invoiceTransition(store.MarkInvoicePaid)))
	api.POST("/invoices/:id/void", ctrl.adminOnly(ctrl.invoiceTransition(store.VoidInvoice)))

	api.GET("/reports/invoices", ctrl.reportTable)
	api.GET("/reports/statistics", ctrl.reportStatistics)
	api.GET("/reports/export.csv", ctrl.exportCSV)
	api.GET("/reports/export.xlsx", ctrl.exportXLSX)
	api.GET("/reports/export.pdf", ctrl.exportPDF)
	api.GET("/reports/preview.png", ctrl.reportPreviewPNG)

	return e.Start(fmt.Sprintf(":%d", store.Config.Port))
}

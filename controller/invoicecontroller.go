package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

type invoiceListQuery struct {
	Status   string `query:"status"`
	ClientID string `query:"client_id"`
	Limit    int    `query:"limit"`
	Cursor   string `query:"cursor"`
	Sort     string `query:"sort"`
}

type APIInvoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       time.Time  `json:"due_date"`
	ClientID      string     `json:"client_id"`
	UserID        string     `json:"user_id"`
	ClientName    string     `json:"client_name,omitempty"`
	UserName      string     `json:"user_name,omitempty"`
	Description   string     `json:"description,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type APIInvoiceList struct {
	Items      []APIInvoice `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func toAPIInvoice(inv *model.Invoice) APIInvoice {
	return APIInvoice{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount.String(),
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		ClientID:      inv.ClientID,
		UserID:        inv.UserID,
		ClientName:    inv.ClientName(),
		UserName:      inv.UserName(),
		Description:   inv.Description,
		Notes:         inv.Notes,
		ApprovedAt:    inv.ApprovedAt,
		PaidAt:        inv.PaidAt,
		RejectedAt:    inv.RejectedAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (ctrl *controller) apiInvoiceList(c echo.Context) error {
	ownerID := ownerIDFromContext(c)
	var q invoiceListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, apiError("bad_query", "invalid query params"))
	}
	invs, next, err := ctrl.model.ListInvoices(ownerID, model.InvoiceListQuery{
		Status:   q.Status,
		ClientID: q.ClientID,
		Limit:    q.Limit,
		Cursor:   q.Cursor,
		Sort:     q.Sort,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiError("db_error", "could not load invoices"))
	}

	items := make([]APIInvoice, len(invs))
	for i := range invs {
		items[i] = toAPIInvoice(&invs[i])
	}
	return c.JSON(http.StatusOK, APIInvoiceList{Items: items, NextCursor: next})
}

func (ctrl *controller) apiInvoiceGet(c echo.Context) error {
	ownerID := ownerIDFromContext(c)
	inv, err := ctrl.model.LoadInvoice(c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, apiError("not_found", "invoice not found"))
		}
		return c.JSON(http.StatusInternalServerError, apiError("db_error", "could not load invoice"))
	}
	return c.JSON(http.StatusOK, toAPIInvoice(inv))
}

// invoiceTransition adapts a store status-transition function into a
// handler.
func (ctrl *controller) invoiceTransition(fn func(id string, ownerID uint, t time.Time) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		ownerID := ownerIDFromContext(c)
		id := c.Param("id")
		if err := fn(id, ownerID, time.Now().UTC()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, apiError("not_found", "invoice not found"))
			}
			return c.JSON(http.StatusConflict, apiError("invalid_transition", err.Error()))
		}
		inv, err := ctrl.model.LoadInvoice(id, ownerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, apiError("db_error", "could not reload invoice"))
		}
		return c.JSON(http.StatusOK, toAPIInvoice(inv))
	}
}

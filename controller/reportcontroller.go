package controller

import (
	"net/http"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/labstack/echo/v4"

	"github.com/chuta/celo-invoice-app-sub000/model"
	"github.com/chuta/celo-invoice-app-sub000/report"
)

// reportQuery is the flat query-string form of a filter spec plus the
// table view parameters.
type reportQuery struct {
	Start    *time.Time `form:"start"`
	End      *time.Time `form:"end"`
	Status   string     `form:"status"`
	ClientID string     `form:"clientId"`
	UserID   string     `form:"userId"`
	Min      string     `form:"min"`
	Max      string     `form:"max"`
	Page     int        `form:"page"`
	Sort     string     `form:"sort"`
	Dir      string     `form:"dir"`
}

func bindReportQuery(c echo.Context) (*reportQuery, error) {
	q := &reportQuery{}
	dec := form.NewDecoder()
	dec.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return time.Parse("2006-01-02", vals[0])
	}, time.Time{})
	if err := dec.Decode(q, c.QueryParams()); err != nil {
		return nil, err
	}
	if q.Status == "" {
		q.Status = report.FilterAll
	}
	if q.ClientID == "" {
		q.ClientID = report.FilterAll
	}
	if q.UserID == "" {
		q.UserID = report.FilterAll
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Sort == "" {
		q.Sort = "issueDate"
	}
	if q.Dir != string(report.SortAsc) {
		q.Dir = string(report.SortDesc)
	}
	return q, nil
}

func (q *reportQuery) filterSpec() report.FilterSpec {
	return report.FilterSpec{
		DateRange:   report.DateRange{Start: q.Start, End: q.End},
		Status:      q.Status,
		ClientID:    q.ClientID,
		UserID:      q.UserID,
		AmountRange: report.AmountRange{Min: q.Min, Max: q.Max},
	}
}

// filteredCollection loads the owner's records and applies the bound
// filter spec through a filter store, so an invalid spec degrades to
// the unfiltered collection instead of an empty page.
func (ctrl *controller) filteredCollection(c echo.Context) ([]model.Invoice, *report.FilterStore, *reportQuery, error) {
	q, err := bindReportQuery(c)
	if err != nil {
		return nil, nil, nil, ErrInvalid(err, "invalid report query")
	}
	records, err := ctrl.model.ListInvoicesForReport(ownerIDFromContext(c))
	if err != nil {
		return nil, nil, nil, ErrInternal(err)
	}
	fs := report.NewFilterStore()
	fs.Update(q.filterSpec())
	return fs.FilteredInvoices(records), fs, q, nil
}

// ---- DTOs ----

type APIReportRow struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	ClientName    string `json:"clientName"`
	UserName      string `json:"userName"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	IssueDate     string `json:"issueDate"`
	DueDate       string `json:"dueDate"`

	// expanded-row detail
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	Wallet      string `json:"wallet,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAgo  string `json:"updatedAgo"`
}

type APIPagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	TotalCount int   `json:"totalCount"`
	Window     []int `json:"window"`
}

type APIReportTable struct {
	Rows             []APIReportRow    `json:"rows"`
	Pagination       APIPagination     `json:"pagination"`
	Validation       report.Validation `json:"validation"`
	HasActiveFilters bool              `json:"hasActiveFilters"`
	FilterSummary    []string          `json:"filterSummary"`
}

func toAPIReportRow(inv *model.Invoice) APIReportRow {
	row := APIReportRow{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName(),
		UserName:      inv.UserName(),
		Amount:        inv.Amount.StringFixed(2),
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Description:   inv.Description,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt.Format("2006-01-02"),
		UpdatedAgo:    formatTimeAgo(inv.UpdatedAt),
	}
	if inv.Client != nil {
		row.ClientEmail = inv.Client.Email
		row.Wallet = report.TruncateWallet(inv.Client.WalletAddress)
	}
	if inv.User != nil {
		row.UserEmail = inv.User.Email
	}
	return row
}

// reportTable renders one sorted page of the filtered collection.
func (ctrl *controller) reportTable(c echo.Context) error {
	filtered, fs, q, err := ctrl.filteredCollection(c)
	if err != nil {
		return respondAppError(c, err)
	}

	sorted := report.SortRecords(filtered, q.Sort, report.SortDirection(q.Dir))
	totalPages := report.TotalPages(len(sorted))
	page := q.Page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	pageRecords := report.Paginate(sorted, page)
	rows := make([]APIReportRow, len(pageRecords))
	for i := range pageRecords {
		rows[i] = toAPIReportRow(&pageRecords[i])
	}

	return c.JSON(http.StatusOK, APIReportTable{
		Rows: rows,
		Pagination: APIPagination{
			Page:       page,
			TotalPages: totalPages,
			TotalCount: len(sorted),
			Window:     report.PageWindow(page, totalPages),
		},
		Validation:       fs.Validation(),
		HasActiveFilters: fs.HasActiveFilters(),
		FilterSummary:    fs.Summary(),
	})
}

// reportStatistics returns the aggregate metrics for the filtered
// collection.
func (ctrl *controller) reportStatistics(c echo.Context) error {
	filtered, _, _, err := ctrl.filteredCollection(c)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(http.StatusOK, report.CalculateStatistics(filtered, time.Now()))
}

func respondAppError(c echo.Context, err error) error {
	if ae, ok := err.(*appError); ok {
		msg := ae.Public
		if msg == "" {
			msg = http.StatusText(ae.Status)
		}
		return c.JSON(ae.Status, apiError(ae.Code, msg))
	}
	return c.JSON(http.StatusInternalServerError, apiError("INTERNAL", "internal error"))
}

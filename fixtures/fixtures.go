// Package fixtures provides test data builders shared by the model,
// report, and controller tests.
package fixtures

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

// NewTestStore opens a fresh in-memory database.
func NewTestStore(t *testing.T) *model.Store {
	t.Helper()
	store, err := model.InitTestDatabase()
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	return store
}

// InvoiceOption mutates an invoice under construction.
type InvoiceOption func(*model.Invoice)

var invoiceCounter int

// Invoice builds a draft invoice with sensible defaults. Options are
// applied in order.
func Invoice(opts ...InvoiceOption) *model.Invoice {
	invoiceCounter++
	issue := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	inv := &model.Invoice{
		ID:            uuid.NewString(),
		OwnerID:       1,
		InvoiceNumber: fmt.Sprintf("INV-%04d", invoiceCounter),
		Amount:        decimal.NewFromInt(100),
		Status:        model.InvoiceStatusDraft,
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
		CreatedAt:     issue,
		UpdatedAt:     issue,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func WithID(id string) InvoiceOption {
	return func(inv *model.Invoice) { inv.ID = id }
}

func WithNumber(number string) InvoiceOption {
	return func(inv *model.Invoice) { inv.InvoiceNumber = number }
}

func WithAmount(amount float64) InvoiceOption {
	return func(inv *model.Invoice) { inv.Amount = decimal.NewFromFloat(amount) }
}

func WithStatus(status model.InvoiceStatus) InvoiceOption {
	return func(inv *model.Invoice) { inv.Status = status }
}

func WithIssueDate(t time.Time) InvoiceOption {
	return func(inv *model.Invoice) {
		inv.IssueDate = t
		inv.DueDate = t.AddDate(0, 1, 0)
	}
}

func WithDueDate(t time.Time) InvoiceOption {
	return func(inv *model.Invoice) { inv.DueDate = t }
}

func WithCreatedAt(t time.Time) InvoiceOption {
	return func(inv *model.Invoice) { inv.CreatedAt = t }
}

func WithDescription(s string) InvoiceOption {
	return func(inv *model.Invoice) { inv.Description = s }
}

func WithNotes(s string) InvoiceOption {
	return func(inv *model.Invoice) { inv.Notes = s }
}

// WithClient attaches a denormalized client summary.
func WithClient(id, name, email string) InvoiceOption {
	return func(inv *model.Invoice) {
		inv.ClientID = id
		inv.Client = &model.Client{ID: id, OwnerID: inv.OwnerID, Name: name, Email: email}
	}
}

// WithClientID sets the foreign key without a summary, modelling an
// absent upstream join.
func WithClientID(id string) InvoiceOption {
	return func(inv *model.Invoice) {
		inv.ClientID = id
		inv.Client = nil
	}
}

// WithUser attaches a denormalized user summary.
func WithUser(id, fullName, email string) InvoiceOption {
	return func(inv *model.Invoice) {
		inv.UserID = id
		inv.User = &model.AppUser{ID: id, OwnerID: inv.OwnerID, FullName: fullName, Email: email}
	}
}

// WithUserID sets the foreign key without a summary.
func WithUserID(id string) InvoiceOption {
	return func(inv *model.Invoice) {
		inv.UserID = id
		inv.User = nil
	}
}

// WithWallet sets a wallet address on the client summary, creating one
// when absent.
func WithWallet(addr string) InvoiceOption {
	return func(inv *model.Invoice) {
		if inv.Client == nil {
			inv.Client = &model.Client{ID: uuid.NewString(), OwnerID: inv.OwnerID}
			inv.ClientID = inv.Client.ID
		}
		inv.Client.WalletAddress = addr
	}
}

// Invoices builds n invoices sharing the given options.
func Invoices(n int, opts ...InvoiceOption) []model.Invoice {
	out := make([]model.Invoice, n)
	for i := range out {
		out[i] = *Invoice(opts...)
	}
	return out
}

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusApproved  InvoiceStatus = "approved"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRejected  InvoiceStatus = "rejected"
	InvoiceStatusVoided    InvoiceStatus = "voided"
)

func (s InvoiceStatus) IsFinal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled || s == InvoiceStatusVoided
}

// CountsAsRevenue reports whether invoices in this status contribute to
// revenue totals, top-client rankings and monthly trends.
func (s InvoiceStatus) CountsAsRevenue() bool {
	return s == InvoiceStatusApproved || s == InvoiceStatusPaid
}

// AllStatuses lists every valid status, in lifecycle order.
func AllStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusApproved,
		InvoiceStatusPaid,
		InvoiceStatusCancelled,
		InvoiceStatusRejected,
		InvoiceStatusVoided,
	}
}

// Client is the denormalized customer summary embedded in invoice rows.
// The upstream join may be absent, so consumers must check for nil.
type Client struct {
	ID            string `gorm:"primarykey"`
	OwnerID       uint   `gorm:"index"`
	Name          string
	Email         string
	Country       string
	WalletAddress string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AppUser is the denormalized creator summary embedded in invoice rows.
type AppUser struct {
	ID        string `gorm:"primarykey"`
	OwnerID   uint   `gorm:"index"`
	FullName  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AppUser) TableName() string { return "app_users" }

// Invoice is the record the reporting core operates on.
type Invoice struct {
	ID            string `gorm:"primarykey"`
	OwnerID       uint   `gorm:"index;index:idx_owner_status"`
	InvoiceNumber string
	Amount        decimal.Decimal `sql:"type:decimal(20,8);"`
	Status        InvoiceStatus   `gorm:"type:text;not null;default:draft;check:status IN ('draft','pending','approved','paid','cancelled','rejected','voided');index;index:idx_owner_status"`
	IssueDate     time.Time
	DueDate       time.Time
	ClientID      string  `gorm:"index"`
	UserID        string  `gorm:"index"`
	Client        *Client  `gorm:"foreignKey:ClientID"`
	User          *AppUser `gorm:"foreignKey:UserID"`
	Description   string
	Notes         string
	ApprovedAt    *time.Time
	PaidAt        *time.Time
	RejectedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	return nil
}

// ClientName returns the embedded client name or the empty string when
// the summary is absent.
func (inv *Invoice) ClientName() string {
	if inv.Client == nil {
		return ""
	}
	return inv.Client.Name
}

// UserName returns the embedded creator name or the empty string when
// the summary is absent.
func (inv *Invoice) UserName() string {
	if inv.User == nil {
		return ""
	}
	return inv.User.FullName
}

// SaveInvoice creates or updates an invoice, enforcing owner scope.
func (s *Store) SaveInvoice(inv *Invoice, ownerID uint) error {
	if inv.OwnerID != ownerID {
		return fmt.Errorf("save invoice: owner mismatch")
	}
	return s.db.Save(inv).Error
}

// LoadInvoice loads an invoice with its client and user summaries.
func (s *Store) LoadInvoice(id string, ownerID uint) (*Invoice, error) {
	var inv Invoice
	result := s.db.Where("owner_id = ?", ownerID).
		Preload("Client").
		Preload("User").
		First(&inv, "id = ?", id)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("load invoice %v: %w", id, err)
	}
	return &inv, nil
}

// DeleteInvoice removes an invoice within the owner scope.
func (s *Store) DeleteInvoice(inv *Invoice, ownerID uint) error {
	return s.db.Where("owner_id = ?", ownerID).Delete(inv).Error
}

// --- Status Transitions ------------------------------------------------------
//
// Allowed transitions:
//   draft    -> pending | cancelled
//   pending  -> approved | rejected | cancelled
//   approved -> paid | voided
//   paid, cancelled, rejected, voided -> (final, no further changes)

func (s *Store) changeInvoiceStatus(id string, ownerID uint, to InvoiceStatus, t time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv Invoice

		// Lock the row (Postgres: FOR UPDATE; SQLite: no-op)
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			First(&inv).Error; err != nil {
			return err
		}

		from := inv.Status
		if from.IsFinal() {
			return fmt.Errorf("invoice %s is final (%s)", id, from)
		}

		allowed := map[InvoiceStatus]map[InvoiceStatus]bool{
			InvoiceStatusDraft:    {InvoiceStatusPending: true, InvoiceStatusCancelled: true},
			InvoiceStatusPending:  {InvoiceStatusApproved: true, InvoiceStatusRejected: true, InvoiceStatusCancelled: true},
			InvoiceStatusApproved: {InvoiceStatusPaid: true, InvoiceStatusVoided: true},
		}
		if !allowed[from][to] {
			return fmt.Errorf("invalid status transition %q -> %q", from, to)
		}

		updates := map[string]any{
			"status": to,
		}
		switch to {
		case InvoiceStatusApproved:
			updates["approved_at"] = t
		case InvoiceStatusPaid:
			updates["paid_at"] = t
		case InvoiceStatusRejected:
			updates["rejected_at"] = t
		}

		return tx.Model(&Invoice{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates).Error
	})
}

// SubmitInvoice moves a draft to pending review.
func (s *Store) SubmitInvoice(id string, ownerID uint, t time.Time) error {
	return s.changeInvoiceStatus(id, ownerID, InvoiceStatusPending, t)
}

// ApproveInvoice marks a pending invoice as approved.
func (s *Store) ApproveInvoice(id string, ownerID uint, t time.Time) error {
	return s.changeInvoiceStatus(id, ownerID, InvoiceStatusApproved, t)
}

// RejectInvoice marks a pending invoice as rejected.
func (s *Store) RejectInvoice(id string, ownerID uint, t time.Time) error {
	return s.changeInvoiceStatus(id, ownerID, InvoiceStatusRejected, t)
}

// MarkInvoicePaid marks an approved invoice as paid.
func (s *Store) MarkInvoicePaid(id string, ownerID uint, t time.Time) error {
	return s.changeInvoiceStatus(id, ownerID, InvoiceStatusPaid, t)
}

// VoidInvoice voids an approved invoice.
func (s *Store) VoidInvoice(id string, ownerID uint, t time.Time) error {
	return s.changeInvoiceStatus(id, ownerID, InvoiceStatusVoided, t)
}

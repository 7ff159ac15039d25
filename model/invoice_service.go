package model

import (
	"strconv"
)

// InvoiceListQuery captures filter, paging, and sorting options for listing invoices.
type InvoiceListQuery struct {
	Status   string // Optional: filter by exact status value
	ClientID string // Optional: restrict to a single client
	Limit    int    // Page size (1–200); defaults to 50 when out of range
	Cursor   string // Simple offset cursor encoded as a string: "0", "50", ...
	Sort     string // Sort mode: "issue_desc" (default), "issue_asc", "created_desc"
}

// ListInvoices returns a page of invoices for the given owner along with the next cursor.
// Owner-scoped and safe to call repeatedly for pagination.
//
// Paging model:
//   - Uses an offset-based cursor encoded as a string (q.Cursor).
//   - Fetches Limit+1 rows to determine if there is a next page; if so, trims to Limit and
//     returns nextCursor = offset + Limit (as string).
func (s *Store) ListInvoices(ownerID uint, q InvoiceListQuery) (items []Invoice, nextCursor string, err error) {
	// Clamp/normalize limit
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}

	// Decode offset cursor
	offset := 0
	if q.Cursor != "" {
		if n, e := strconv.Atoi(q.Cursor); e == nil && n >= 0 {
			offset = n
		}
	}

	db := s.db.Model(&Invoice{}).Where("owner_id = ?", ownerID)

	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.ClientID != "" {
		db = db.Where("client_id = ?", q.ClientID)
	}

	switch q.Sort {
	case "issue_asc":
		db = db.Order("issue_date asc")
	case "created_desc":
		db = db.Order("created_at desc")
	default:
		db = db.Order("issue_date desc")
	}

	var invs []Invoice
	if err = db.Preload("Client").Preload("User").
		Offset(offset).Limit(q.Limit + 1).Find(&invs).Error; err != nil {
		return nil, "", err
	}

	if len(invs) > q.Limit {
		invs = invs[:q.Limit]
		nextCursor = strconv.Itoa(offset + q.Limit)
	}
	return invs, nextCursor, nil
}

// ListInvoicesForReport loads every invoice of the owner with client and
// user summaries preloaded. This is the unfiltered collection the
// reporting core consumes; all further filtering happens in memory.
func (s *Store) ListInvoicesForReport(ownerID uint) ([]Invoice, error) {
	var invs []Invoice
	err := s.db.Where("owner_id = ?", ownerID).
		Preload("Client").
		Preload("User").
		Order("created_at asc, id asc").
		Find(&invs).Error
	return invs, err
}

// ListClients returns the owner's clients ordered by name, for filter
// dropdowns.
func (s *Store) ListClients(ownerID uint) ([]Client, error) {
	var clients []Client
	err := s.db.Where("owner_id = ?", ownerID).
		Order("LOWER(name) ASC, id ASC").
		Find(&clients).Error
	return clients, err
}

// ListAppUsers returns the owner's users ordered by name, for filter
// dropdowns.
func (s *Store) ListAppUsers(ownerID uint) ([]AppUser, error) {
	var users []AppUser
	err := s.db.Where("owner_id = ?", ownerID).
		Order("LOWER(full_name) ASC, id ASC").
		Find(&users).Error
	return users, err
}

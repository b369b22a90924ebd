package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusSent          InvoiceStatus = "SENT"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled     InvoiceStatus = "CANCELLED"
)

// UnpaidStatuses are the statuses that still carry an expected outflow.
// DRAFT, PAID and CANCELLED invoices never contribute to a forecast.
func UnpaidStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusSent,
		InvoiceStatusPartiallyPaid,
		InvoiceStatusOverdue,
	}
}

// IsValidInvoiceStatus reports whether s is a known invoice status
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusSent,
		InvoiceStatusPaid, InvoiceStatusPartiallyPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	VendorID      uuid.UUID       `json:"vendorId"`
	CustomerID    *uuid.UUID      `json:"customerId,omitempty"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Category      *string         `json:"category,omitempty"`
	Description   *string         `json:"description,omitempty"`
	DocumentPath  *string         `json:"documentPath,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Vendor    *Vendor    `json:"vendor,omitempty"`
	LineItems []LineItem `json:"lineItems,omitempty"`
	Payments  []Payment  `json:"payments,omitempty"`

	// LineItemCount is populated by list queries that do not hydrate
	// the full line item collection.
	LineItemCount int64 `json:"lineItemCount,omitempty"`
}

type Payment struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoiceId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
}

type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category,omitempty"`
}

// PaidAmount returns the sum of all payments recorded against the invoice.
func (i *Invoice) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range i.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// RemainingBalance returns the unpaid portion of the invoice
// (total minus recorded payments). Negative when overpaid; callers
// treat non-positive balances as nothing owed.
func (i *Invoice) RemainingBalance() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount())
}

// LineItemSubtotal returns the sum of the invoice's line item amounts.
// Line items are not guaranteed to sum to the invoice total.
func (i *Invoice) LineItemSubtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range i.LineItems {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

type InvoiceFilters struct {
	Search    string
	Status    *InvoiceStatus
	VendorID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder SortOrder
	Page      int32
	PageSize  int32
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// InvoiceSortColumns are the columns the list endpoint may sort by
var InvoiceSortColumns = map[string]bool{
	"issueDate":     true,
	"dueDate":       true,
	"totalAmount":   true,
	"invoiceNumber": true,
	"status":        true,
}

type PaginatedInvoices struct {
	Data       []*Invoice `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

// OutflowQuery selects the unpaid-invoice snapshot a forecaster consumes.
// DueBefore is the inclusive upper bound on due dates. There is no lower
// bound: overdue invoices are always included and the monthly forecaster
// rolls them into the current bucket.
type OutflowQuery struct {
	DueBefore        time.Time
	RequireDueDate   bool
	IncludeLineItems bool
}

// InvoiceDigest is the minimal row used for trend aggregation
type InvoiceDigest struct {
	IssueDate   time.Time
	TotalAmount decimal.Decimal
}

// CategorySpendRow is a single categorized invoice total
type CategorySpendRow struct {
	Category    string
	TotalAmount decimal.Decimal
}

type InvoiceRepository interface {
	GetByID(id uuid.UUID) (*Invoice, error)
	List(filters *InvoiceFilters) (*PaginatedInvoices, error)
	ListUnpaid(q *OutflowQuery) ([]*Invoice, error)
	ListIssuedSince(start time.Time) ([]*InvoiceDigest, error)
	ListCategorySpend(start, end *time.Time) ([]*CategorySpendRow, error)
	SetDocumentPath(id uuid.UUID, objectPath string) error
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VendorWithCount is a vendor plus its total invoice count
type VendorWithCount struct {
	Vendor
	InvoiceCount int64 `json:"invoiceCount"`
}

// VendorSpend aggregates a vendor's invoiced spend in a date range
type VendorSpend struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        *string         `json:"email,omitempty"`
	TotalSpend   decimal.Decimal `json:"-"`
	InvoiceCount int64           `json:"invoiceCount"`
}

type VendorRepository interface {
	ListWithCounts() ([]*VendorWithCount, error)
	ListSpend(start, end *time.Time) ([]*VendorSpend, error)
}

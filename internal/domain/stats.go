package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverviewStats holds the year-to-date dashboard headline numbers
type OverviewStats struct {
	TotalSpend          decimal.Decimal
	TotalInvoices       int64
	DocumentsUploaded   int64
	AverageInvoiceValue decimal.Decimal
	Year                int
}

// SpendStatuses are the statuses counted towards year-to-date spend.
// Draft, cancelled and overdue invoices are excluded from the headline
// figure; overdue amounts surface through the outflow forecast instead.
func SpendStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusPaid,
		InvoiceStatusPartiallyPaid,
		InvoiceStatusSent,
		InvoiceStatusPending,
	}
}

type StatsRepository interface {
	TotalSpendSince(start time.Time, statuses []InvoiceStatus) (decimal.Decimal, error)
	CountInvoicesSince(start time.Time) (int64, error)
	CountDocuments() (int64, error)
	AverageInvoiceValueSince(start time.Time) (decimal.Decimal, error)
}

package domain

import "github.com/shopspring/decimal"

// TrendPoint is one month of invoice volume and value
type TrendPoint struct {
	Month        string
	InvoiceCount int64
	TotalValue   decimal.Decimal
}

// DefaultTrendMonths is the default trailing window for invoice trends
const DefaultTrendMonths = 12

package domain

import "github.com/shopspring/decimal"

// MonthlyOutflowBucket is one calendar month of expected cash outflow.
// Month is the machine key in YYYY-MM form; rendering a human label is a
// presentation concern handled at the HTTP layer. Built fresh per forecast
// request, never persisted.
type MonthlyOutflowBucket struct {
	Month           string
	ExpectedOutflow decimal.Decimal
}

// CategoryOutflowBucket accumulates expected outflow for one spend category.
type CategoryOutflowBucket struct {
	Category string
	Amount   decimal.Decimal
}

// UncategorizedLabel is the fallback category applied at the aggregation
// edge when neither the invoice nor a line item carries one. Absent
// categories are modeled as nil pointers everywhere else.
const UncategorizedLabel = "Uncategorized"

const (
	// DefaultOutflowMonths is the default monthly forecast horizon
	DefaultOutflowMonths = 6
	// DefaultCategoryOutflowMonths is the default category forecast horizon
	DefaultCategoryOutflowMonths = 24
	// MaxOutflowMonths caps caller-supplied horizons
	MaxOutflowMonths = 60
)

package service

import (
	"sort"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/util"
	"github.com/shopspring/decimal"
)

// ForecastService computes expected cash outflow from unpaid invoices.
// Each call fetches a fresh snapshot and folds it with no shared state,
// so concurrent requests cannot interfere.
type ForecastService struct {
	invoiceRepo domain.InvoiceRepository
}

// NewForecastService creates a new ForecastService
func NewForecastService(invoiceRepo domain.InvoiceRepository) *ForecastService {
	return &ForecastService{invoiceRepo: invoiceRepo}
}

// MonthlyOutflow returns the month-bucketed outflow forecast over the given
// horizon. Non-positive horizons fall back to the default rather than
// producing an empty schedule.
func (s *ForecastService) MonthlyOutflow(horizonMonths int) ([]domain.MonthlyOutflowBucket, error) {
	horizonMonths = clampHorizon(horizonMonths, domain.DefaultOutflowMonths)

	today := util.Midnight(time.Now())
	invoices, err := s.invoiceRepo.ListUnpaid(&domain.OutflowQuery{
		DueBefore:      today.AddDate(0, horizonMonths, 0),
		RequireDueDate: true,
	})
	if err != nil {
		return nil, err
	}

	return ComputeMonthlyOutflow(invoices, horizonMonths, today), nil
}

// CategoryOutflow returns the category-bucketed outflow forecast for unpaid
// invoices due within the given horizon.
func (s *ForecastService) CategoryOutflow(horizonMonths int) ([]domain.CategoryOutflowBucket, error) {
	horizonMonths = clampHorizon(horizonMonths, domain.DefaultCategoryOutflowMonths)

	today := util.Midnight(time.Now())
	invoices, err := s.invoiceRepo.ListUnpaid(&domain.OutflowQuery{
		DueBefore:        today.AddDate(0, horizonMonths, 0),
		IncludeLineItems: true,
	})
	if err != nil {
		return nil, err
	}

	return ComputeCategoryOutflow(invoices), nil
}

func clampHorizon(months, fallback int) int {
	if months <= 0 {
		return fallback
	}
	if months > domain.MaxOutflowMonths {
		return domain.MaxOutflowMonths
	}
	return months
}

// ComputeMonthlyOutflow buckets remaining balances into calendar months.
// Overdue balances (due strictly before today) roll into the current
// month's bucket regardless of how far past due they are. The result is
// exactly horizonMonths buckets, month-sequential from today's month,
// zero-filled for months with no activity.
//
// Pure: no I/O, no clock reads; today is supplied by the caller.
func ComputeMonthlyOutflow(invoices []*domain.Invoice, horizonMonths int, today time.Time) []domain.MonthlyOutflowBucket {
	today = util.Midnight(today)
	currentMonthKey := util.MonthKey(today)

	byMonth := make(map[string]decimal.Decimal, horizonMonths)
	for _, inv := range invoices {
		if inv == nil || inv.DueDate == nil {
			continue
		}

		remaining := inv.RemainingBalance()
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		due := util.Midnight(*inv.DueDate)
		key := currentMonthKey
		if !due.Before(today) {
			key = util.MonthKey(due)
		}
		byMonth[key] = byMonth[key].Add(remaining)
	}

	buckets := make([]domain.MonthlyOutflowBucket, 0, horizonMonths)
	monthStart := util.MonthStart(today)
	for i := 0; i < horizonMonths; i++ {
		key := util.MonthKey(util.AddMonths(monthStart, i))
		amount, ok := byMonth[key]
		if !ok {
			amount = decimal.Zero
		}
		buckets = append(buckets, domain.MonthlyOutflowBucket{
			Month:           key,
			ExpectedOutflow: amount,
		})
	}
	return buckets
}

// ComputeCategoryOutflow buckets remaining balances by spend category.
// When an invoice has line items, its remaining balance is split across
// their categories in proportion to each item's share of the line-item
// subtotal. The split always partitions the full remaining balance, even
// when line items do not sum to the invoice total (missing tax lines and
// the like): the allocation is rescaled, not truncated.
//
// Pure: no I/O, no clock reads.
func ComputeCategoryOutflow(invoices []*domain.Invoice) []domain.CategoryOutflowBucket {
	byCategory := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if inv == nil {
			continue
		}

		remaining := inv.RemainingBalance()
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		subtotal := inv.LineItemSubtotal()
		if subtotal.LessThanOrEqual(decimal.Zero) {
			// No usable line items: the whole balance goes to the
			// invoice's own category.
			cat := categoryOrDefault(inv.Category)
			byCategory[cat] = byCategory[cat].Add(remaining)
			continue
		}

		for _, item := range inv.LineItems {
			cat := categoryOrDefault(item.Category)
			share := remaining.Mul(item.Amount).Div(subtotal)
			byCategory[cat] = byCategory[cat].Add(share)
		}
	}

	buckets := make([]domain.CategoryOutflowBucket, 0, len(byCategory))
	for cat, amount := range byCategory {
		buckets = append(buckets, domain.CategoryOutflowBucket{Category: cat, Amount: amount})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Amount.Equal(buckets[j].Amount) {
			return buckets[i].Amount.GreaterThan(buckets[j].Amount)
		}
		return buckets[i].Category < buckets[j].Category
	})
	return buckets
}

func categoryOrDefault(category *string) string {
	if category != nil && *category != "" {
		return *category
	}
	return domain.UncategorizedLabel
}

package service

import (
	"testing"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Overview(t *testing.T) {
	statsRepo := &testutil.MockStatsRepository{
		TotalSpend:   decimal.RequireFromString("12345.67"),
		InvoiceCount: 42,
		Documents:    17,
		AverageValue: decimal.RequireFromString("293.95"),
	}
	svc := NewStatsService(statsRepo, testutil.NewMockInvoiceRepository())

	stats, err := svc.Overview()

	require.NoError(t, err)
	assert.Equal(t, "12345.67", stats.TotalSpend.StringFixed(2))
	assert.Equal(t, int64(42), stats.TotalInvoices)
	assert.Equal(t, int64(17), stats.DocumentsUploaded)
	assert.Equal(t, "293.95", stats.AverageInvoiceValue.StringFixed(2))
	assert.Equal(t, time.Now().Year(), stats.Year)

	// Spend window starts at January 1 of the current year
	assert.Equal(t, time.January, statsRepo.LastSpendStart.Month())
	assert.Equal(t, 1, statsRepo.LastSpendStart.Day())
	assert.Equal(t, time.Now().Year(), statsRepo.LastSpendStart.Year())
	assert.ElementsMatch(t, domain.SpendStatuses(), statsRepo.LastSpendStatuses)
}

func TestStatsService_CategorySpend(t *testing.T) {
	invoiceRepo := testutil.NewMockInvoiceRepository()
	invoiceRepo.ListCategorySpendFn = func(start, end *time.Time) ([]*domain.CategorySpendRow, error) {
		return []*domain.CategorySpendRow{
			{Category: "Software", TotalAmount: decimal.RequireFromString("100")},
			{Category: "Hardware", TotalAmount: decimal.RequireFromString("500")},
			{Category: "Software", TotalAmount: decimal.RequireFromString("50.25")},
		}, nil
	}
	svc := NewStatsService(&testutil.MockStatsRepository{}, invoiceRepo)

	buckets, err := svc.CategorySpend(nil, nil)

	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "Hardware", buckets[0].Category)
	assert.Equal(t, "500.00", buckets[0].Amount.StringFixed(2))
	assert.Equal(t, "Software", buckets[1].Category)
	assert.Equal(t, "150.25", buckets[1].Amount.StringFixed(2))
}

package service

import (
	"testing"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_List_Validation(t *testing.T) {
	svc := NewInvoiceService(testutil.NewMockInvoiceRepository())

	badStatus := domain.InvoiceStatus("NOT_A_STATUS")
	_, err := svc.List(&domain.InvoiceFilters{Status: &badStatus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.List(&domain.InvoiceFilters{SortBy: "documentPath"})
	assert.ErrorIs(t, err, domain.ErrInvalidSortColumn)

	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	_, err = svc.List(&domain.InvoiceFilters{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestInvoiceService_List_NilFilters(t *testing.T) {
	svc := NewInvoiceService(testutil.NewMockInvoiceRepository())

	page, err := svc.List(nil)

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)
}

func TestInvoiceService_GetByID(t *testing.T) {
	repo := testutil.NewMockInvoiceRepository()
	inv := &domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-001"}
	repo.Invoices[inv.ID] = inv
	svc := NewInvoiceService(repo)

	got, err := svc.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-001", got.InvoiceNumber)

	_, err = svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

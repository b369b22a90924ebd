package service

import (
	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/google/uuid"
)

// InvoiceService handles invoice browsing
type InvoiceService struct {
	invoiceRepo domain.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo domain.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// List returns a page of invoices matching the filters
func (s *InvoiceService) List(filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
	if filters == nil {
		filters = &domain.InvoiceFilters{}
	}
	if filters.Status != nil && !domain.IsValidInvoiceStatus(*filters.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if filters.SortBy != "" && !domain.InvoiceSortColumns[filters.SortBy] {
		return nil, domain.ErrInvalidSortColumn
	}
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}
	return s.invoiceRepo.List(filters)
}

// GetByID returns a single invoice with its vendor, line items and payments
func (s *InvoiceService) GetByID(id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(id)
}

package testutil

import (
	"context"
	"io"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/vanna"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockInvoiceRepository is a mock implementation of domain.InvoiceRepository
type MockInvoiceRepository struct {
	Invoices map[uuid.UUID]*domain.Invoice

	ListFn              func(filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error)
	ListUnpaidFn        func(q *domain.OutflowQuery) ([]*domain.Invoice, error)
	ListIssuedSinceFn   func(start time.Time) ([]*domain.InvoiceDigest, error)
	ListCategorySpendFn func(start, end *time.Time) ([]*domain.CategorySpendRow, error)

	LastOutflowQuery *domain.OutflowQuery
	DocumentPaths    map[uuid.UUID]string
}

// NewMockInvoiceRepository creates a new MockInvoiceRepository
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		Invoices:      make(map[uuid.UUID]*domain.Invoice),
		DocumentPaths: make(map[uuid.UUID]string),
	}
}

// GetByID retrieves an invoice by ID
func (m *MockInvoiceRepository) GetByID(id uuid.UUID) (*domain.Invoice, error) {
	if inv, ok := m.Invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

// List returns a page of invoices
func (m *MockInvoiceRepository) List(filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
	if m.ListFn != nil {
		return m.ListFn(filters)
	}
	data := make([]*domain.Invoice, 0, len(m.Invoices))
	for _, inv := range m.Invoices {
		data = append(data, inv)
	}
	return &domain.PaginatedInvoices{
		Data:       data,
		Page:       1,
		PageSize:   domain.DefaultPageSize,
		TotalItems: int64(len(data)),
		TotalPages: 1,
	}, nil
}

// ListUnpaid returns invoices still carrying a balance
func (m *MockInvoiceRepository) ListUnpaid(q *domain.OutflowQuery) ([]*domain.Invoice, error) {
	m.LastOutflowQuery = q
	if m.ListUnpaidFn != nil {
		return m.ListUnpaidFn(q)
	}
	var out []*domain.Invoice
	for _, inv := range m.Invoices {
		if q.RequireDueDate && inv.DueDate == nil {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// ListIssuedSince returns invoice digests issued on or after start
func (m *MockInvoiceRepository) ListIssuedSince(start time.Time) ([]*domain.InvoiceDigest, error) {
	if m.ListIssuedSinceFn != nil {
		return m.ListIssuedSinceFn(start)
	}
	var out []*domain.InvoiceDigest
	for _, inv := range m.Invoices {
		if inv.IssueDate.Before(start) {
			continue
		}
		out = append(out, &domain.InvoiceDigest{IssueDate: inv.IssueDate, TotalAmount: inv.TotalAmount})
	}
	return out, nil
}

// ListCategorySpend returns per-invoice categorized totals
func (m *MockInvoiceRepository) ListCategorySpend(start, end *time.Time) ([]*domain.CategorySpendRow, error) {
	if m.ListCategorySpendFn != nil {
		return m.ListCategorySpendFn(start, end)
	}
	var out []*domain.CategorySpendRow
	for _, inv := range m.Invoices {
		if inv.Category == nil {
			continue
		}
		out = append(out, &domain.CategorySpendRow{Category: *inv.Category, TotalAmount: inv.TotalAmount})
	}
	return out, nil
}

// SetDocumentPath records an uploaded document's object path
func (m *MockInvoiceRepository) SetDocumentPath(id uuid.UUID, objectPath string) error {
	inv, ok := m.Invoices[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.DocumentPath = &objectPath
	m.DocumentPaths[id] = objectPath
	return nil
}

// MockVendorRepository is a mock implementation of domain.VendorRepository
type MockVendorRepository struct {
	Vendors []*domain.VendorWithCount
	Spend   []*domain.VendorSpend

	ListSpendFn func(start, end *time.Time) ([]*domain.VendorSpend, error)
}

// ListWithCounts returns the configured vendor list
func (m *MockVendorRepository) ListWithCounts() ([]*domain.VendorWithCount, error) {
	return m.Vendors, nil
}

// ListSpend returns the configured vendor spend rows
func (m *MockVendorRepository) ListSpend(start, end *time.Time) ([]*domain.VendorSpend, error) {
	if m.ListSpendFn != nil {
		return m.ListSpendFn(start, end)
	}
	return m.Spend, nil
}

// MockStatsRepository is a mock implementation of domain.StatsRepository
type MockStatsRepository struct {
	TotalSpend   decimal.Decimal
	InvoiceCount int64
	Documents    int64
	AverageValue decimal.Decimal

	LastSpendStatuses []domain.InvoiceStatus
	LastSpendStart    time.Time
}

// TotalSpendSince returns the configured spend total
func (m *MockStatsRepository) TotalSpendSince(start time.Time, statuses []domain.InvoiceStatus) (decimal.Decimal, error) {
	m.LastSpendStart = start
	m.LastSpendStatuses = statuses
	return m.TotalSpend, nil
}

// CountInvoicesSince returns the configured invoice count
func (m *MockStatsRepository) CountInvoicesSince(start time.Time) (int64, error) {
	return m.InvoiceCount, nil
}

// CountDocuments returns the configured document count
func (m *MockStatsRepository) CountDocuments() (int64, error) {
	return m.Documents, nil
}

// AverageInvoiceValueSince returns the configured average
func (m *MockStatsRepository) AverageInvoiceValueSince(start time.Time) (decimal.Decimal, error) {
	return m.AverageValue, nil
}

// MockChatClient is a mock implementation of service.ChatClient
type MockChatClient struct {
	QueryFn func(ctx context.Context, question string) (*vanna.QueryResponse, error)
	PingFn  func(ctx context.Context) error
}

// Query forwards to QueryFn
func (m *MockChatClient) Query(ctx context.Context, question string) (*vanna.QueryResponse, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, question)
	}
	return &vanna.QueryResponse{Question: question}, nil
}

// Ping forwards to PingFn
func (m *MockChatClient) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// MockDocumentRepository is an in-memory storage.DocumentRepository
type MockDocumentRepository struct {
	Objects map[string][]byte

	UploadErr error
	URLPrefix string
}

// NewMockDocumentRepository creates a new MockDocumentRepository
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		Objects:   make(map[string][]byte),
		URLPrefix: "https://storage.test/",
	}
}

// Upload stores the object in memory
func (m *MockDocumentRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = body
	return objectPath, nil
}

// Delete removes the object
func (m *MockDocumentRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL
func (m *MockDocumentRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return m.URLPrefix + objectPath, nil
}

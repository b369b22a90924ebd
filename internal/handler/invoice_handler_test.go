package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestListInvoices_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInvoiceRepository()
	inv := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-001",
		Status:        domain.InvoiceStatusSent,
		TotalAmount:   decimal.RequireFromString("150.50"),
		IssueDate:     time.Now(),
		Vendor:        &domain.Vendor{ID: uuid.New(), Name: "Acme"},
	}
	inv.Payments = []domain.Payment{{Amount: decimal.RequireFromString("50.50")}}
	repo.Invoices[inv.ID] = inv
	handler := NewInvoiceHandler(service.NewInvoiceService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListInvoices(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp PaginatedInvoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("Expected 1 invoice, got %d", len(resp.Data))
	}
	got := resp.Data[0]
	if got.TotalAmount != "150.50" {
		t.Errorf("Expected totalAmount 150.50, got %s", got.TotalAmount)
	}
	if got.RemainingBalance != "100.00" {
		t.Errorf("Expected remainingBalance 100.00, got %s", got.RemainingBalance)
	}
	if got.Vendor == nil || got.Vendor.Name != "Acme" {
		t.Errorf("Expected embedded vendor, got %+v", got.Vendor)
	}
}

func TestListInvoices_InvalidParams(t *testing.T) {
	e := echo.New()
	handler := NewInvoiceHandler(service.NewInvoiceService(testutil.NewMockInvoiceRepository()))

	cases := []string{
		"status=BOGUS",
		"sortBy=documentPath",
		"sortOrder=upward",
		"vendorId=not-a-uuid",
		"startDate=June+1st",
		"page=0",
		"pageSize=-5",
		"startDate=2025-06-01&endDate=2025-05-01",
	}
	for _, query := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.ListInvoices(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", query, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", query, rec.Code)
		}
	}
}

func TestGetInvoice_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewInvoiceHandler(service.NewInvoiceService(testutil.NewMockInvoiceRepository()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/invoices/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := handler.GetInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetInvoice_InvalidID(t *testing.T) {
	e := echo.New()
	handler := NewInvoiceHandler(service.NewInvoiceService(testutil.NewMockInvoiceRepository()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/invoices/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := handler.GetInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

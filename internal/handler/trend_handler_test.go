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
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestGetInvoiceTrends_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInvoiceRepository()
	repo.ListIssuedSinceFn = func(start time.Time) ([]*domain.InvoiceDigest, error) {
		return []*domain.InvoiceDigest{
			{IssueDate: time.Now(), TotalAmount: decimal.RequireFromString("123.45")},
		}, nil
	}
	handler := NewTrendHandler(service.NewTrendService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice-trends?months=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetInvoiceTrends(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp []TrendPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(resp))
	}
	for _, p := range resp {
		if p.MonthName == "" {
			t.Errorf("Expected monthName for %s", p.Month)
		}
	}
}

func TestGetInvoiceTrends_DefaultWindow(t *testing.T) {
	e := echo.New()
	handler := NewTrendHandler(service.NewTrendService(testutil.NewMockInvoiceRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoice-trends", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetInvoiceTrends(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var resp []TrendPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp) != domain.DefaultTrendMonths {
		t.Errorf("Expected %d points, got %d", domain.DefaultTrendMonths, len(resp))
	}
}

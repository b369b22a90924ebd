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

func TestGetOverview_Success(t *testing.T) {
	e := echo.New()
	statsRepo := &testutil.MockStatsRepository{
		TotalSpend:   decimal.RequireFromString("9876.54"),
		InvoiceCount: 21,
		Documents:    8,
		AverageValue: decimal.RequireFromString("470.31"),
	}
	handler := NewStatsHandler(service.NewStatsService(statsRepo, testutil.NewMockInvoiceRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetOverview(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp OverviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.TotalSpend != "9876.54" {
		t.Errorf("Expected totalSpend 9876.54, got %s", resp.TotalSpend)
	}
	if resp.TotalInvoices != 21 || resp.DocumentsUploaded != 8 {
		t.Errorf("Unexpected counts: %+v", resp)
	}
	if resp.Year != time.Now().Year() {
		t.Errorf("Expected current year, got %d", resp.Year)
	}
}

func TestGetCategorySpend_Success(t *testing.T) {
	e := echo.New()
	invoiceRepo := testutil.NewMockInvoiceRepository()
	invoiceRepo.ListCategorySpendFn = func(start, end *time.Time) ([]*domain.CategorySpendRow, error) {
		if start == nil || end == nil {
			t.Errorf("Expected parsed date range, got start=%v end=%v", start, end)
		}
		return []*domain.CategorySpendRow{
			{Category: "Software", TotalAmount: decimal.RequireFromString("300")},
		}, nil
	}
	handler := NewStatsHandler(service.NewStatsService(&testutil.MockStatsRepository{}, invoiceRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/category-spend?startDate=2025-01-01&endDate=2025-06-30", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetCategorySpend(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp []CategorySpendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Amount != "300.00" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestGetCategorySpend_InvalidDates(t *testing.T) {
	e := echo.New()
	handler := NewStatsHandler(service.NewStatsService(&testutil.MockStatsRepository{}, testutil.NewMockInvoiceRepository()))

	for _, query := range []string{"startDate=01/01/2025", "endDate=soon", "startDate=2025-06-01&endDate=2025-01-01"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/category-spend?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.GetCategorySpend(c); err != nil {
			t.Fatalf("%s: expected no error, got %v", query, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", query, rec.Code)
		}
	}
}

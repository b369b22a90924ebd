package handler

import (
	"net/http"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// OverviewResponse is the year-to-date dashboard summary
type OverviewResponse struct {
	TotalSpend          string `json:"totalSpend"`
	TotalInvoices       int64  `json:"totalInvoices"`
	DocumentsUploaded   int64  `json:"documentsUploaded"`
	AverageInvoiceValue string `json:"averageInvoiceValue"`
	Year                int    `json:"year"`
}

// CategorySpendResponse is one category's invoiced total
type CategorySpendResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// GetOverview handles GET /api/v1/stats
func (h *StatsHandler) GetOverview(c echo.Context) error {
	stats, err := h.statsService.Overview()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute overview stats")
		return NewInternalError(c, "Failed to fetch dashboard statistics")
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalSpend:          stats.TotalSpend.StringFixed(2),
		TotalInvoices:       stats.TotalInvoices,
		DocumentsUploaded:   stats.DocumentsUploaded,
		AverageInvoiceValue: stats.AverageInvoiceValue.StringFixed(2),
		Year:                stats.Year,
	})
}

// GetCategorySpend handles GET /api/v1/category-spend
func (h *StatsHandler) GetCategorySpend(c echo.Context) error {
	start, end, err := parseDateRangeParams(c)
	if err != nil {
		return err
	}

	buckets, err := h.statsService.CategorySpend(start, end)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute category spend")
		return NewInternalError(c, "Failed to fetch category spend")
	}

	resp := make([]CategorySpendResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, CategorySpendResponse{
			Category: b.Category,
			Amount:   b.Amount.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// parseDateRangeParams reads the optional startDate and endDate query
// params as YYYY-MM-DD dates
func parseDateRangeParams(c echo.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if s := c.QueryParam("startDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, NewValidationError(c, "Invalid startDate parameter", []ValidationError{
				{Field: "startDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		start = &parsed
	}
	if s := c.QueryParam("endDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, NewValidationError(c, "Invalid endDate parameter", []ValidationError{
				{Field: "endDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		end = &parsed
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, NewValidationError(c, "Invalid date range", []ValidationError{
			{Field: "endDate", Message: "Must not be before startDate"},
		})
	}
	return start, end, nil
}

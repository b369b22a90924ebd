package handler

import (
	"net/http"
	"strconv"

	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ForecastHandler handles cash outflow forecast HTTP requests
type ForecastHandler struct {
	forecastService *service.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// MonthlyOutflowResponse is one month of the cash outflow forecast
type MonthlyOutflowResponse struct {
	Month           string `json:"month"`
	MonthName       string `json:"monthName"`
	ExpectedOutflow string `json:"expectedOutflow"`
}

// CategoryOutflowResponse is one category of the outflow forecast
type CategoryOutflowResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// GetMonthlyOutflow handles GET /api/v1/cash-outflow
// Accepts an optional months query param; missing means the default
// horizon, non-numeric or non-positive is rejected.
func (h *ForecastHandler) GetMonthlyOutflow(c echo.Context) error {
	months, err := parseMonthsParam(c)
	if err != nil {
		return err
	}

	buckets, err := h.forecastService.MonthlyOutflow(months)
	if err != nil {
		log.Error().Err(err).Int("months", months).Msg("Failed to compute monthly outflow")
		return NewInternalError(c, "Failed to compute cash outflow forecast")
	}

	resp := make([]MonthlyOutflowResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, MonthlyOutflowResponse{
			Month:           b.Month,
			MonthName:       util.MonthLabel(b.Month),
			ExpectedOutflow: b.ExpectedOutflow.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCategoryOutflow handles GET /api/v1/category-outflow
func (h *ForecastHandler) GetCategoryOutflow(c echo.Context) error {
	months, err := parseMonthsParam(c)
	if err != nil {
		return err
	}

	buckets, err := h.forecastService.CategoryOutflow(months)
	if err != nil {
		log.Error().Err(err).Int("months", months).Msg("Failed to compute category outflow")
		return NewInternalError(c, "Failed to compute category outflow forecast")
	}

	resp := make([]CategoryOutflowResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, CategoryOutflowResponse{
			Category: b.Category,
			Amount:   b.Amount.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// parseMonthsParam reads the months query param. Zero means "use the
// service default"; an explicit malformed value is a client error.
func parseMonthsParam(c echo.Context) (int, error) {
	monthsStr := c.QueryParam("months")
	if monthsStr == "" {
		return 0, nil
	}

	months, err := strconv.Atoi(monthsStr)
	if err != nil || months <= 0 {
		return 0, NewValidationError(c, "Invalid months parameter", []ValidationError{
			{Field: "months", Message: "Must be a positive integer"},
		})
	}
	return months, nil
}

package handler

import (
	"net/http"

	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/flowbit/flowbit/analytics-api/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TrendHandler handles invoice trend HTTP requests
type TrendHandler struct {
	trendService *service.TrendService
}

// NewTrendHandler creates a new TrendHandler
func NewTrendHandler(trendService *service.TrendService) *TrendHandler {
	return &TrendHandler{trendService: trendService}
}

// TrendPointResponse is one month of invoice volume and value
type TrendPointResponse struct {
	Month        string `json:"month"`
	MonthName    string `json:"monthName"`
	InvoiceCount int64  `json:"invoiceCount"`
	TotalValue   string `json:"totalValue"`
}

// GetInvoiceTrends handles GET /api/v1/invoice-trends
func (h *TrendHandler) GetInvoiceTrends(c echo.Context) error {
	months, err := parseMonthsParam(c)
	if err != nil {
		return err
	}

	points, err := h.trendService.InvoiceTrends(months)
	if err != nil {
		log.Error().Err(err).Int("months", months).Msg("Failed to compute invoice trends")
		return NewInternalError(c, "Failed to fetch invoice trends")
	}

	resp := make([]TrendPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, TrendPointResponse{
			Month:        p.Month,
			MonthName:    util.MonthLabel(p.Month),
			InvoiceCount: p.InvoiceCount,
			TotalValue:   p.TotalValue.StringFixed(2),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

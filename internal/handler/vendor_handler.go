package handler

import (
	"net/http"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// VendorHandler handles vendor HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// VendorResponse is one vendor with its invoice count
type VendorResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	InvoiceCount int64     `json:"invoiceCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VendorSpendResponse is one vendor ranked by invoiced spend
type VendorSpendResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	TotalSpend   string    `json:"totalSpend"`
	InvoiceCount int64     `json:"invoiceCount"`
}

// ListVendors handles GET /api/v1/vendors
func (h *VendorHandler) ListVendors(c echo.Context) error {
	vendors, err := h.vendorService.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list vendors")
		return NewInternalError(c, "Failed to fetch vendors")
	}

	resp := make([]VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, VendorResponse{
			ID:           v.ID,
			Name:         v.Name,
			Email:        v.Email,
			InvoiceCount: v.InvoiceCount,
			CreatedAt:    v.CreatedAt,
			UpdatedAt:    v.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTopVendors handles GET /api/v1/vendors/top10
func (h *VendorHandler) GetTopVendors(c echo.Context) error {
	start, end, err := parseDateRangeParams(c)
	if err != nil {
		return err
	}

	vendors, err := h.vendorService.TopBySpend(start, end)
	if err != nil {
		log.Error().Err(err).Msg("Failed to rank vendors by spend")
		return NewInternalError(c, "Failed to fetch top vendors")
	}

	resp := make([]VendorSpendResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, VendorSpendResponse{
			ID:           v.ID,
			Name:         v.Name,
			Email:        v.Email,
			TotalSpend:   v.TotalSpend.StringFixed(2),
			InvoiceCount: v.InvoiceCount,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// InvoiceHandler handles invoice browsing HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// VendorSummary is the embedded vendor on an invoice response
type VendorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email *string   `json:"email,omitempty"`
}

// LineItemResponse is one invoice line item
type LineItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Category    *string   `json:"category,omitempty"`
}

// PaymentResponse is one payment recorded against an invoice
type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	Amount        string    `json:"amount"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
}

// InvoiceResponse is a single invoice rendered for the API
type InvoiceResponse struct {
	ID               uuid.UUID          `json:"id"`
	InvoiceNumber    string             `json:"invoiceNumber"`
	Vendor           *VendorSummary     `json:"vendor,omitempty"`
	IssueDate        time.Time          `json:"issueDate"`
	DueDate          *time.Time         `json:"dueDate,omitempty"`
	Status           string             `json:"status"`
	TotalAmount      string             `json:"totalAmount"`
	PaidAmount       string             `json:"paidAmount"`
	RemainingBalance string             `json:"remainingBalance"`
	Category         *string            `json:"category,omitempty"`
	Description      *string            `json:"description,omitempty"`
	HasDocument      bool               `json:"hasDocument"`
	LineItemCount    int64              `json:"lineItemCount"`
	LineItems        []LineItemResponse `json:"lineItems,omitempty"`
	Payments         []PaymentResponse  `json:"payments,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// PaginatedInvoicesResponse is a page of invoices plus paging metadata
type PaginatedInvoicesResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}

func toInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		IssueDate:        inv.IssueDate,
		DueDate:          inv.DueDate,
		Status:           string(inv.Status),
		TotalAmount:      inv.TotalAmount.StringFixed(2),
		PaidAmount:       inv.PaidAmount().StringFixed(2),
		RemainingBalance: inv.RemainingBalance().StringFixed(2),
		Category:         inv.Category,
		Description:      inv.Description,
		HasDocument:      inv.DocumentPath != nil,
		LineItemCount:    inv.LineItemCount,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
	if inv.Vendor != nil {
		resp.Vendor = &VendorSummary{
			ID:    inv.Vendor.ID,
			Name:  inv.Vendor.Name,
			Email: inv.Vendor.Email,
		}
	}
	if len(inv.LineItems) > 0 {
		resp.LineItemCount = int64(len(inv.LineItems))
		for _, item := range inv.LineItems {
			resp.LineItems = append(resp.LineItems, LineItemResponse{
				ID:          item.ID,
				Description: item.Description,
				Amount:      item.Amount.StringFixed(2),
				Category:    item.Category,
			})
		}
	}
	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount.StringFixed(2),
			PaymentDate:   p.PaymentDate,
			PaymentMethod: p.PaymentMethod,
		})
	}
	return resp
}

// ListInvoices handles GET /api/v1/invoices
func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	filters, err := parseInvoiceFilters(c)
	if err != nil {
		return err
	}

	page, err := h.invoiceService.List(filters)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return NewValidationError(c, "Invalid status parameter", []ValidationError{
				{Field: "status", Message: "Must be a valid invoice status"},
			})
		case errors.Is(err, domain.ErrInvalidSortColumn):
			return NewValidationError(c, "Invalid sortBy parameter", []ValidationError{
				{Field: "sortBy", Message: "Must be a sortable column"},
			})
		case errors.Is(err, domain.ErrInvalidDateRange):
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "endDate", Message: "Must not be before startDate"},
			})
		default:
			log.Error().Err(err).Msg("Failed to list invoices")
			return NewInternalError(c, "Failed to fetch invoices")
		}
	}

	resp := PaginatedInvoicesResponse{
		Data:       make([]InvoiceResponse, 0, len(page.Data)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
	for _, inv := range page.Data {
		resp.Data = append(resp.Data, toInvoiceResponse(inv))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid invoice ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	inv, err := h.invoiceService.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return NewNotFoundError(c, "Invoice not found")
		}
		log.Error().Err(err).Str("invoice_id", id.String()).Msg("Failed to fetch invoice")
		return NewInternalError(c, "Failed to fetch invoice")
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

func parseInvoiceFilters(c echo.Context) (*domain.InvoiceFilters, error) {
	filters := &domain.InvoiceFilters{
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if s := c.QueryParam("status"); s != "" {
		status := domain.InvoiceStatus(s)
		filters.Status = &status
	}
	if s := c.QueryParam("vendorId"); s != "" {
		vendorID, err := uuid.Parse(s)
		if err != nil {
			return nil, NewValidationError(c, "Invalid vendorId parameter", []ValidationError{
				{Field: "vendorId", Message: "Must be a valid UUID"},
			})
		}
		filters.VendorID = &vendorID
	}

	start, end, err := parseDateRangeParams(c)
	if err != nil {
		return nil, err
	}
	filters.StartDate = start
	filters.EndDate = end

	switch order := c.QueryParam("sortOrder"); order {
	case "", "desc":
		filters.SortOrder = domain.SortOrderDesc
	case "asc":
		filters.SortOrder = domain.SortOrderAsc
	default:
		return nil, NewValidationError(c, "Invalid sortOrder parameter", []ValidationError{
			{Field: "sortOrder", Message: "Must be asc or desc"},
		})
	}

	if s := c.QueryParam("page"); s != "" {
		page, err := strconv.ParseInt(s, 10, 32)
		if err != nil || page < 1 {
			return nil, NewValidationError(c, "Invalid page parameter", []ValidationError{
				{Field: "page", Message: "Must be a positive integer"},
			})
		}
		filters.Page = int32(page)
	}
	if s := c.QueryParam("pageSize"); s != "" {
		size, err := strconv.ParseInt(s, 10, 32)
		if err != nil || size < 1 {
			return nil, NewValidationError(c, "Invalid pageSize parameter", []ValidationError{
				{Field: "pageSize", Message: "Must be a positive integer"},
			})
		}
		if size > domain.MaxPageSize {
			size = domain.MaxPageSize
		}
		filters.PageSize = int32(size)
	}
	return filters, nil
}

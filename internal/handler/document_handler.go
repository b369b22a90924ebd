package handler

import (
	"errors"
	"net/http"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MaxDocumentSize caps uploaded invoice documents at 20 MB
const MaxDocumentSize = 20 << 20

// DocumentHandler handles invoice document HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadDocumentResponse confirms a stored document
type UploadDocumentResponse struct {
	DocumentPath string `json:"documentPath"`
}

// DocumentURLResponse carries a short-lived link to a stored document
type DocumentURLResponse struct {
	URL string `json:"url"`
}

// UploadDocument handles POST /api/v1/invoices/:id/document.
// Expects a multipart form with the file under "document".
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid invoice ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return NewValidationError(c, "Document file is required", []ValidationError{
			{Field: "document", Message: "Must be provided as multipart form data"},
		})
	}
	if fileHeader.Size > MaxDocumentSize {
		return NewValidationError(c, "Document too large", []ValidationError{
			{Field: "document", Message: "Must be at most 20 MB"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded document")
		return NewInternalError(c, "Failed to read uploaded document")
	}
	defer func() {
		_ = file.Close()
	}()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath, err := h.documentService.Upload(c.Request().Context(), id, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return NewNotFoundError(c, "Invoice not found")
		}
		log.Error().Err(err).Str("invoice_id", id.String()).Msg("Failed to store document")
		return NewInternalError(c, "Failed to store document")
	}
	return c.JSON(http.StatusCreated, UploadDocumentResponse{DocumentPath: objectPath})
}

// GetDocumentURL handles GET /api/v1/invoices/:id/document
func (h *DocumentHandler) GetDocumentURL(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid invoice ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	url, err := h.documentService.DocumentURL(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvoiceNotFound):
			return NewNotFoundError(c, "Invoice not found")
		case errors.Is(err, domain.ErrDocumentNotFound):
			return NewNotFoundError(c, "No document uploaded for this invoice")
		default:
			log.Error().Err(err).Str("invoice_id", id.String()).Msg("Failed to generate document URL")
			return NewInternalError(c, "Failed to generate document link")
		}
	}
	return c.JSON(http.StatusOK, DocumentURLResponse{URL: url})
}

package service

import (
	"context"
	"io"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/repository/storage"
	"github.com/google/uuid"
)

// DocumentURLExpiry is how long a presigned document link stays valid
const DocumentURLExpiry = 15 * time.Minute

// DocumentService stores source documents (PDF scans and the like) for
// invoices and hands out short-lived links to them.
type DocumentService struct {
	invoiceRepo domain.InvoiceRepository
	documents   storage.DocumentRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(invoiceRepo domain.InvoiceRepository, documents storage.DocumentRepository) *DocumentService {
	return &DocumentService{
		invoiceRepo: invoiceRepo,
		documents:   documents,
	}
}

// Upload stores a document for the invoice and records its object path.
// Replaces any previously stored document reference.
func (s *DocumentService) Upload(ctx context.Context, invoiceID uuid.UUID, filename, contentType string, data io.Reader, size int64) (string, error) {
	if _, err := s.invoiceRepo.GetByID(invoiceID); err != nil {
		return "", err
	}

	objectPath := storage.GenerateObjectPath(invoiceID, filename)
	if _, err := s.documents.Upload(ctx, objectPath, data, contentType, size); err != nil {
		return "", err
	}

	if err := s.invoiceRepo.SetDocumentPath(invoiceID, objectPath); err != nil {
		return "", err
	}
	return objectPath, nil
}

// DocumentURL returns a presigned GET URL for the invoice's document.
// Returns domain.ErrDocumentNotFound when none has been uploaded.
func (s *DocumentService) DocumentURL(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return "", err
	}
	if invoice.DocumentPath == nil || *invoice.DocumentPath == "" {
		return "", domain.ErrDocumentNotFound
	}
	return s.documents.GeneratePresignedURL(ctx, *invoice.DocumentPath, DocumentURLExpiry)
}

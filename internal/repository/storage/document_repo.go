package storage

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// DocumentRepository defines the interface for invoice document storage
type DocumentRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for an invoice document.
// A fresh UUID prefix keeps re-uploads from colliding with stale objects.
func GenerateObjectPath(invoiceID uuid.UUID, filename string) string {
	return path.Join("invoices", invoiceID.String(), uuid.New().String()+"_"+path.Base(filename))
}

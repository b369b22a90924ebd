package domain

import "errors"

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternalError     = errors.New("internal error")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrDocumentNotFound  = errors.New("invoice has no document")
	ErrQuestionRequired  = errors.New("question is required")
	ErrChatUnavailable   = errors.New("chat service is not available")
	ErrInvalidStatus     = errors.New("invalid invoice status")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidSortColumn = errors.New("invalid sort column")
)

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InvoiceRepository implements domain.InvoiceRepository using PostgreSQL
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `i.id::text, i.invoice_number, i.vendor_id::text, i.customer_id::text,
	i.issue_date, i.due_date, i.status, i.total_amount::text, i.category,
	i.description, i.document_path, i.created_at, i.updated_at`

// invoiceSortColumns maps API sort names to SQL columns. Only values from
// this map are ever interpolated into a query.
var invoiceSortColumns = map[string]string{
	"issueDate":     "i.issue_date",
	"dueDate":       "i.due_date",
	"totalAmount":   "i.total_amount",
	"invoiceNumber": "i.invoice_number",
	"status":        "i.status",
}

// GetByID retrieves an invoice with its vendor, line items and payments
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*domain.Invoice, error) {
	ctx := context.Background()

	query := fmt.Sprintf(`SELECT %s,
	v.name, v.email, v.created_at, v.updated_at
FROM invoices i
JOIN vendors v ON v.id = i.vendor_id
WHERE i.id = $1`, invoiceColumns)

	row := r.pool.QueryRow(ctx, query, id.String())
	invoice, vendor, err := scanInvoiceWithVendor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	invoice.Vendor = vendor

	if err := r.loadPayments(ctx, []*domain.Invoice{invoice}); err != nil {
		return nil, err
	}
	if err := r.loadLineItems(ctx, []*domain.Invoice{invoice}); err != nil {
		return nil, err
	}
	invoice.LineItemCount = int64(len(invoice.LineItems))
	return invoice, nil
}

// List retrieves invoices matching the filters, one page at a time
func (r *InvoiceRepository) List(filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
	ctx := context.Background()

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters.Page > 0 {
		page = filters.Page
	}
	if filters.PageSize > 0 {
		pageSize = filters.PageSize
		if pageSize > domain.MaxPageSize {
			pageSize = domain.MaxPageSize
		}
	}

	where, args := buildInvoiceWhere(filters)

	countQuery := "SELECT COUNT(*) FROM invoices i JOIN vendors v ON v.id = i.vendor_id" + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	sortColumn := invoiceSortColumns["issueDate"]
	if col, ok := invoiceSortColumns[filters.SortBy]; ok {
		sortColumn = col
	}
	direction := "DESC"
	if filters.SortOrder == domain.SortOrderAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s,
	v.name, v.email, v.created_at, v.updated_at,
	(SELECT COUNT(*) FROM line_items li WHERE li.invoice_id = i.id)
FROM invoices i
JOIN vendors v ON v.id = i.vendor_id%s
ORDER BY %s %s
LIMIT $%d OFFSET $%d`, invoiceColumns, where, sortColumn, direction, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, vendor, err := scanInvoiceWithVendorAndCount(rows)
		if err != nil {
			return nil, err
		}
		invoice.Vendor = vendor
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPayments(ctx, invoices); err != nil {
		return nil, err
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedInvoices{
		Data:       invoices,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListUnpaid retrieves the unpaid-invoice snapshot a forecaster consumes:
// invoices in an unpaid status with a due date up to and including
// q.DueBefore, each with its payments (and line items when requested).
// There is no lower bound, so all overdue invoices are included.
func (r *InvoiceRepository) ListUnpaid(q *domain.OutflowQuery) ([]*domain.Invoice, error) {
	ctx := context.Background()

	statuses := make([]string, 0, 4)
	for _, s := range domain.UnpaidStatuses() {
		statuses = append(statuses, string(s))
	}

	query := fmt.Sprintf(`SELECT %s
FROM invoices i
WHERE i.status = ANY($1)
  AND i.due_date IS NOT NULL
  AND i.due_date <= $2
ORDER BY i.due_date ASC`, invoiceColumns)

	rows, err := r.pool.Query(ctx, query, statuses, q.DueBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPayments(ctx, invoices); err != nil {
		return nil, err
	}
	if q.IncludeLineItems {
		if err := r.loadLineItems(ctx, invoices); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// ListIssuedSince returns issue date and total for trend aggregation
func (r *InvoiceRepository) ListIssuedSince(start time.Time) ([]*domain.InvoiceDigest, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT issue_date, total_amount::text FROM invoices WHERE issue_date >= $1 ORDER BY issue_date ASC`,
		start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []*domain.InvoiceDigest
	for rows.Next() {
		var d domain.InvoiceDigest
		var amount string
		if err := rows.Scan(&d.IssueDate, &amount); err != nil {
			return nil, err
		}
		if d.TotalAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid total_amount: %w", err)
		}
		digests = append(digests, &d)
	}
	return digests, rows.Err()
}

// ListCategorySpend returns one row per categorized invoice in the range
func (r *InvoiceRepository) ListCategorySpend(start, end *time.Time) ([]*domain.CategorySpendRow, error) {
	ctx := context.Background()

	query := `SELECT category, total_amount::text FROM invoices WHERE category IS NOT NULL`
	args := []any{}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND issue_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND issue_date <= $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.CategorySpendRow
	for rows.Next() {
		var row domain.CategorySpendRow
		var amount string
		if err := rows.Scan(&row.Category, &amount); err != nil {
			return nil, err
		}
		if row.TotalAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid total_amount: %w", err)
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// SetDocumentPath records the stored document's object path on the invoice
func (r *InvoiceRepository) SetDocumentPath(id uuid.UUID, objectPath string) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET document_path = $2, updated_at = now() WHERE id = $1`,
		id.String(), objectPath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// loadPayments attaches payments to each invoice in a single query
func (r *InvoiceRepository) loadPayments(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	byID, ids := indexInvoices(invoices)
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, invoice_id::text, amount::text, payment_date, payment_method
FROM payments
WHERE invoice_id = ANY($1::uuid[])
ORDER BY payment_date ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Payment
		var id, invoiceID, amount string
		if err := rows.Scan(&id, &invoiceID, &amount, &p.PaymentDate, &p.PaymentMethod); err != nil {
			return err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return err
		}
		if p.InvoiceID, err = uuid.Parse(invoiceID); err != nil {
			return err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("invalid payment amount: %w", err)
		}
		if inv, ok := byID[p.InvoiceID]; ok {
			inv.Payments = append(inv.Payments, p)
		}
	}
	return rows.Err()
}

// loadLineItems attaches line items to each invoice in a single query
func (r *InvoiceRepository) loadLineItems(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	byID, ids := indexInvoices(invoices)
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, invoice_id::text, description, amount::text, category
FROM line_items
WHERE invoice_id = ANY($1::uuid[])
ORDER BY id ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		var id, invoiceID, amount string
		if err := rows.Scan(&id, &invoiceID, &item.Description, &amount, &item.Category); err != nil {
			return err
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return err
		}
		if item.InvoiceID, err = uuid.Parse(invoiceID); err != nil {
			return err
		}
		if item.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("invalid line item amount: %w", err)
		}
		if inv, ok := byID[item.InvoiceID]; ok {
			inv.LineItems = append(inv.LineItems, item)
		}
	}
	return rows.Err()
}

func indexInvoices(invoices []*domain.Invoice) (map[uuid.UUID]*domain.Invoice, []string) {
	byID := make(map[uuid.UUID]*domain.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID.String())
	}
	return byID, ids
}

// buildInvoiceWhere assembles the WHERE clause for list/count queries
func buildInvoiceWhere(filters *domain.InvoiceFilters) (string, []any) {
	var conditions []string
	var args []any

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(i.invoice_number ILIKE $%d OR v.name ILIKE $%d OR i.description ILIKE $%d)", n, n, n))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if filters.VendorID != nil {
		args = append(args, filters.VendorID.String())
		conditions = append(conditions, fmt.Sprintf("i.vendor_id = $%d", len(args)))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conditions = append(conditions, fmt.Sprintf("i.issue_date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conditions = append(conditions, fmt.Sprintf("i.issue_date <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*domain.Invoice, error) {
	var inv domain.Invoice
	var id, vendorID, amount string
	var customerID *string

	if err := row.Scan(&id, &inv.InvoiceNumber, &vendorID, &customerID,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &amount, &inv.Category,
		&inv.Description, &inv.DocumentPath, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return finishInvoice(&inv, id, vendorID, customerID, amount)
}

func scanInvoiceWithVendor(row rowScanner) (*domain.Invoice, *domain.Vendor, error) {
	var inv domain.Invoice
	var vendor domain.Vendor
	var id, vendorID, amount string
	var customerID *string

	if err := row.Scan(&id, &inv.InvoiceNumber, &vendorID, &customerID,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &amount, &inv.Category,
		&inv.Description, &inv.DocumentPath, &inv.CreatedAt, &inv.UpdatedAt,
		&vendor.Name, &vendor.Email, &vendor.CreatedAt, &vendor.UpdatedAt); err != nil {
		return nil, nil, err
	}
	out, err := finishInvoice(&inv, id, vendorID, customerID, amount)
	if err != nil {
		return nil, nil, err
	}
	vendor.ID = out.VendorID
	return out, &vendor, nil
}

func scanInvoiceWithVendorAndCount(row rowScanner) (*domain.Invoice, *domain.Vendor, error) {
	var inv domain.Invoice
	var vendor domain.Vendor
	var id, vendorID, amount string
	var customerID *string

	if err := row.Scan(&id, &inv.InvoiceNumber, &vendorID, &customerID,
		&inv.IssueDate, &inv.DueDate, &inv.Status, &amount, &inv.Category,
		&inv.Description, &inv.DocumentPath, &inv.CreatedAt, &inv.UpdatedAt,
		&vendor.Name, &vendor.Email, &vendor.CreatedAt, &vendor.UpdatedAt,
		&inv.LineItemCount); err != nil {
		return nil, nil, err
	}
	out, err := finishInvoice(&inv, id, vendorID, customerID, amount)
	if err != nil {
		return nil, nil, err
	}
	vendor.ID = out.VendorID
	return out, &vendor, nil
}

func finishInvoice(inv *domain.Invoice, id, vendorID string, customerID *string, amount string) (*domain.Invoice, error) {
	var err error
	if inv.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if inv.VendorID, err = uuid.Parse(vendorID); err != nil {
		return nil, err
	}
	if customerID != nil {
		parsed, err := uuid.Parse(*customerID)
		if err != nil {
			return nil, err
		}
		inv.CustomerID = &parsed
	}
	if inv.TotalAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid total_amount: %w", err)
	}
	return inv, nil
}

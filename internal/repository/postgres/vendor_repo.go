package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// VendorRepository implements domain.VendorRepository using PostgreSQL
type VendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository creates a new VendorRepository
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// ListWithCounts returns all vendors with their invoice counts, name-ordered
func (r *VendorRepository) ListWithCounts() ([]*domain.VendorWithCount, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
SELECT v.id::text, v.name, v.email, v.created_at, v.updated_at, COUNT(i.id)
FROM vendors v
LEFT JOIN invoices i ON i.vendor_id = v.id
GROUP BY v.id, v.name, v.email, v.created_at, v.updated_at
ORDER BY v.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.VendorWithCount
	for rows.Next() {
		var v domain.VendorWithCount
		var id string
		if err := rows.Scan(&id, &v.Name, &v.Email, &v.CreatedAt, &v.UpdatedAt, &v.InvoiceCount); err != nil {
			return nil, err
		}
		if v.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

// ListSpend returns every vendor's invoiced total and invoice count within
// the optional issue-date range. Ranking and truncation happen in the
// service layer.
func (r *VendorRepository) ListSpend(start, end *time.Time) ([]*domain.VendorSpend, error) {
	ctx := context.Background()

	var joinConds []string
	var args []any
	if start != nil {
		args = append(args, *start)
		joinConds = append(joinConds, fmt.Sprintf("i.issue_date >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		joinConds = append(joinConds, fmt.Sprintf("i.issue_date <= $%d", len(args)))
	}

	join := "LEFT JOIN invoices i ON i.vendor_id = v.id"
	if len(joinConds) > 0 {
		join += " AND " + strings.Join(joinConds, " AND ")
	}

	query := fmt.Sprintf(`
SELECT v.id::text, v.name, v.email, COALESCE(SUM(i.total_amount), 0)::text, COUNT(i.id)
FROM vendors v
%s
GROUP BY v.id, v.name, v.email`, join)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.VendorSpend
	for rows.Next() {
		var v domain.VendorSpend
		var id, spend string
		if err := rows.Scan(&id, &v.Name, &v.Email, &spend, &v.InvoiceCount); err != nil {
			return nil, err
		}
		if v.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if v.TotalSpend, err = decimal.NewFromString(spend); err != nil {
			return nil, fmt.Errorf("invalid vendor spend: %w", err)
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

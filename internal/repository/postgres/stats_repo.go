package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StatsRepository implements domain.StatsRepository using PostgreSQL
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// TotalSpendSince sums invoice totals issued on or after start with one of
// the given statuses
func (r *StatsRepository) TotalSpendSince(start time.Time, statuses []domain.InvoiceStatus) (decimal.Decimal, error) {
	ctx := context.Background()

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var total string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)::text FROM invoices WHERE issue_date >= $1 AND status = ANY($2)`,
		start, values).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid spend total: %w", err)
	}
	return amount, nil
}

// CountInvoicesSince counts invoices issued on or after start
func (r *StatsRepository) CountInvoicesSince(start time.Time) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE issue_date >= $1`, start).Scan(&count)
	return count, err
}

// CountDocuments counts invoices with an uploaded document
func (r *StatsRepository) CountDocuments() (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE document_path IS NOT NULL`).Scan(&count)
	return count, err
}

// AverageInvoiceValueSince averages invoice totals issued on or after start
func (r *StatsRepository) AverageInvoiceValueSince(start time.Time) (decimal.Decimal, error) {
	ctx := context.Background()

	var avg string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(total_amount), 0)::text FROM invoices WHERE issue_date >= $1`,
		start).Scan(&avg)
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := decimal.NewFromString(avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid invoice average: %w", err)
	}
	return amount, nil
}

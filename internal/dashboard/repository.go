package dashboard

import (
	"context"
	"database/sql"
	"fmt"

	"laundry-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository runs the read-only scans behind the dashboard. Every method
// reads current state; nothing is precomputed.
type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	Revenue(ctx context.Context, kind string) (decimal.Decimal, error)
	ItemQuantities(ctx context.Context, kind string) ([]ItemAgg, error)
	LaundryItemTotals(ctx context.Context) ([]ItemAgg, error)
	StatusCounts(ctx context.Context, kind string) ([]StatusAgg, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *repository) Revenue(ctx context.Context, kind string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE kind = $1`, kind,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum %s revenue: %w", kind, err)
	}
	return total, nil
}

func (r *repository) ItemQuantities(ctx context.Context, kind string) ([]ItemAgg, error) {
	query := `
		SELECT l->>'itemName' AS item_name, SUM((l->>'qty')::int) AS total_qty
		FROM orders o
		CROSS JOIN LATERAL jsonb_array_elements(o.items) AS l
		WHERE o.kind = $1
		GROUP BY item_name
		ORDER BY total_qty DESC, item_name
	`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed ItemQuantities", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []ItemAgg{}
	for rows.Next() {
		var a ItemAgg
		if err := rows.Scan(&a.Name, &a.Qty); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LaundryItemTotals values every laundry line at the item's current catalog
// price. Lines whose item has left the catalog count at zero.
func (r *repository) LaundryItemTotals(ctx context.Context) ([]ItemAgg, error) {
	query := `
		SELECT l->>'itemName' AS item_name,
			SUM((l->>'qty')::int) AS total_qty,
			COALESCE(SUM((l->>'qty')::int * i.price), 0) AS total_revenue
		FROM orders o
		CROSS JOIN LATERAL jsonb_array_elements(o.items) AS l
		LEFT JOIN items i ON i.name = l->>'itemName'
		WHERE o.kind = 'laundry'
		GROUP BY item_name
		ORDER BY total_qty DESC, item_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed LaundryItemTotals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []ItemAgg{}
	for rows.Next() {
		var a ItemAgg
		if err := rows.Scan(&a.Name, &a.Qty, &a.Revenue); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) StatusCounts(ctx context.Context, kind string) ([]StatusAgg, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM orders
		WHERE kind = $1
		GROUP BY status
		ORDER BY count DESC, status
	`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed StatusCounts", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []StatusAgg{}
	for rows.Next() {
		var a StatusAgg
		if err := rows.Scan(&a.Status, &a.Count); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

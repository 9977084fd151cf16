package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"laundry-be/internal/customer"
	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, o *Order) (*Order, error)
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Order, error)
	List(ctx context.Context, kind Kind) ([]*Order, error)
	Update(ctx context.Context, o *Order) (*Order, error)
	UpdateStatus(ctx context.Context, kind Kind, id uuid.UUID, status Status) (*Order, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, kind, customer_id, items, total_price, status, pickup_time, register_date, created_by`

// withCustomer wraps a data-modifying CTE named o so the written row comes
// back with its customer in the same statement.
const withCustomer = `
	SELECT o.id, o.kind, o.customer_id, o.items, o.total_price, o.status,
		o.pickup_time, o.register_date, o.created_by,
		c.id, c.customer_code, c.full_name, c.phone, c.register_date
	FROM o
	LEFT JOIN customers c ON c.id = o.customer_id
`

func (r *repository) Insert(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Insert"),
		zap.String("kind", string(o.Kind)),
	)

	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	query := `
		WITH o AS (
			INSERT INTO orders (id, kind, customer_id, items, total_price, status, pickup_time, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING ` + orderColumns + `
		)` + withCustomer

	res, err := scanOrder(r.db.QueryRowContext(ctx, query,
		o.ID, o.Kind, o.CustomerID, string(items), o.TotalPrice, o.Status, o.PickupTime, nullUUID(o.CreatedBy),
	))
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("insert order failed: %w", err)
	}

	return res, nil
}

func (r *repository) Get(ctx context.Context, kind Kind, id uuid.UUID) (*Order, error) {
	query := `
		WITH o AS (
			SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND kind = $2
		)` + withCustomer

	res, err := scanOrder(r.db.QueryRowContext(ctx, query, id, kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *repository) List(ctx context.Context, kind Kind) ([]*Order, error) {
	query := `
		WITH o AS (
			SELECT ` + orderColumns + ` FROM orders WHERE kind = $1
		)` + withCustomer + `
		ORDER BY o.register_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed ListOrders", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// Update overwrites the mutable fields of o in one statement.
func (r *repository) Update(ctx context.Context, o *Order) (*Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	query := `
		WITH o AS (
			UPDATE orders
			SET customer_id = $3,
				items = $4,
				total_price = $5,
				pickup_time = $6,
				status = $7
			WHERE id = $1 AND kind = $2
			RETURNING ` + orderColumns + `
		)` + withCustomer

	res, err := scanOrder(r.db.QueryRowContext(ctx, query,
		o.ID, o.Kind, o.CustomerID, string(items), o.TotalPrice, o.PickupTime, o.Status,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order", zap.String("order_id", o.ID.String()), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (r *repository) UpdateStatus(ctx context.Context, kind Kind, id uuid.UUID, status Status) (*Order, error) {
	query := `
		WITH o AS (
			UPDATE orders SET status = $3
			WHERE id = $1 AND kind = $2
			RETURNING ` + orderColumns + `
		)` + withCustomer

	res, err := scanOrder(r.db.QueryRowContext(ctx, query, id, kind, status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status", zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (r *repository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*Order, error) {
	var (
		o         Order
		items     []byte
		createdBy uuid.NullUUID

		custID       uuid.NullUUID
		custCode     sql.NullString
		custName     sql.NullString
		custPhone    sql.NullString
		custRegister sql.NullTime
	)

	err := row.Scan(
		&o.ID, &o.Kind, &o.CustomerID, &items, &o.TotalPrice, &o.Status,
		&o.PickupTime, &o.RegisterDate, &createdBy,
		&custID, &custCode, &custName, &custPhone, &custRegister,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if o.Items == nil {
		o.Items = []Line{}
	}
	if createdBy.Valid {
		id := createdBy.UUID
		o.CreatedBy = &id
	}
	if custID.Valid {
		o.Customer = &customer.Customer{
			ID:           custID.UUID,
			CustomerCode: custCode.String,
			FullName:     custName.String,
			Phone:        custPhone.String,
			RegisterDate: custRegister.Time,
		}
	}

	return &o, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

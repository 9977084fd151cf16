package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const codeConstraint = "customers_customer_code_key"

type Repository interface {
	Create(ctx context.Context, c *Customer) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("customer_code", c.CustomerCode),
	)

	query := `
		INSERT INTO customers (id, customer_code, full_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING register_date
	`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.CustomerCode, c.FullName, c.Phone).
		Scan(&c.RegisterDate)
	if err != nil {
		if db.IsUniqueViolation(err, codeConstraint) {
			log.Warn("customer code collision")
			return nil, errCodeTaken
		}
		log.Error("failed to insert customer", zap.Error(err))
		return nil, fmt.Errorf("create customer failed: %w", err)
	}

	return c, nil
}

func (r *repository) List(ctx context.Context) ([]*Customer, error) {
	query := `
		SELECT id, customer_code, full_name, phone, register_date
		FROM customers
		ORDER BY register_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed ListCustomers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	customers := []*Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CustomerCode, &c.FullName, &c.Phone, &c.RegisterDate); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	query := `
		SELECT id, customer_code, full_name, phone, register_date
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.CustomerCode, &c.FullName, &c.Phone, &c.RegisterDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*Customer, error) {
	// COALESCE keeps existing values for omitted fields
	query := `
		UPDATE customers
		SET full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone)
		WHERE id = $1
		RETURNING id, customer_code, full_name, phone, register_date
	`

	var c Customer
	err := r.db.QueryRowContext(ctx, query, id, input.FullName, input.Phone).
		Scan(&c.ID, &c.CustomerCode, &c.FullName, &c.Phone, &c.RegisterDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update customer", zap.Error(err))
		return nil, err
	}

	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

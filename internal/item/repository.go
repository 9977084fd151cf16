package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const nameConstraint = "items_name_key"

type Repository interface {
	Create(ctx context.Context, it *Item) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PriceByName(ctx context.Context, name string) (decimal.Decimal, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, it *Item) (*Item, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, price) VALUES ($1, $2, $3)`,
		it.ID, it.Name, it.Price,
	)
	if err != nil {
		if db.IsUniqueViolation(err, nameConstraint) {
			return nil, ErrItemExists
		}
		logger.FromCtx(ctx).Error("failed to insert item", zap.String("name", it.Name), zap.Error(err))
		return nil, fmt.Errorf("create item failed: %w", err)
	}
	return it, nil
}

func (r *repository) List(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM items ORDER BY name`)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed ListItems", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) PriceByName(ctx context.Context, name string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT price FROM items WHERE name = $1`, name).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrItemNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

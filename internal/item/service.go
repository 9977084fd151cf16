package item

import (
	"context"
	"strings"

	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, name string, price decimal.Decimal) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PriceOf(ctx context.Context, name string) (decimal.Decimal, error)
}

type service struct {
	repo     Repository
	onChange func()
}

type Option func(*service)

// WithChangeHook registers fn to run after a price becomes visible or
// disappears.
func WithChangeHook(fn func()) Option {
	return func(s *service) { s.onChange = fn }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, onChange: func() {}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, name string, price decimal.Decimal) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateItem"),
		zap.String("name", name),
	)
	log.Info("CreateItem started")

	name = strings.TrimSpace(name)
	if name == "" || price.IsNegative() {
		log.Warn("validation failed")
		return nil, ErrInvalidItem
	}

	it, err := s.repo.Create(ctx, &Item{ID: uuid.New(), Name: name, Price: price.Round(2)})
	if err != nil {
		log.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	s.onChange()
	log.Info("CreateItem success", zap.String("item_id", it.ID.String()))
	return it, nil
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteItem"),
		zap.String("item_id", id.String()),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("failed to delete item", zap.Error(err))
		return err
	}

	s.onChange()
	log.Info("DeleteItem success")
	return nil
}

// PriceOf returns the current unit price of the named item, or an error
// wrapping ErrItemNotFound.
func (s *service) PriceOf(ctx context.Context, name string) (decimal.Decimal, error) {
	return s.repo.PriceByName(ctx, name)
}

package order

import (
	"context"
	"fmt"
	"strings"

	"laundry-be/internal/customer"
	"laundry-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerLookup confirms a customer reference. It returns
// customer.ErrCustomerNotFound for unknown ids.
type CustomerLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

// Recorder receives domain events for metrics.
type Recorder interface {
	OrderCreated(kind string)
	StatusUpdated(kind, status string)
}

type Service interface {
	Create(ctx context.Context, kind Kind, input CreateOrderInput) (*Order, error)
	List(ctx context.Context, kind Kind) ([]*Order, error)
	Update(ctx context.Context, kind Kind, id uuid.UUID, input UpdateOrderInput) (*Order, error)
	UpdateStatus(ctx context.Context, kind Kind, id uuid.UUID, status Status) (*Order, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

type service struct {
	repo      Repository
	customers CustomerLookup
	pricer    *Pricer
	recorder  Recorder
	onChange  func()
}

type Option func(*service)

// WithChangeHook registers fn to run after every successful order write.
func WithChangeHook(fn func()) Option {
	return func(s *service) { s.onChange = fn }
}

func WithRecorder(r Recorder) Option {
	return func(s *service) { s.recorder = r }
}

func NewService(repo Repository, customers CustomerLookup, pricer *Pricer, opts ...Option) Service {
	s := &service{
		repo:      repo,
		customers: customers,
		pricer:    pricer,
		recorder:  nopRecorder{},
		onChange:  func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, kind Kind, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("kind", string(kind)),
	)
	log.Info("CreateOrder started")

	if input.CustomerID == uuid.Nil {
		return nil, validationError("customer is required")
	}
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}
	if input.PickupTime == nil || input.PickupTime.IsZero() {
		return nil, validationError("pickup time is required")
	}

	if _, err := s.customers.Get(ctx, input.CustomerID); err != nil {
		log.Warn("customer lookup failed", zap.String("customer_id", input.CustomerID.String()), zap.Error(err))
		return nil, err
	}

	total, err := s.pricer.Total(ctx, kind, input.Items)
	if err != nil {
		log.Warn("pricing failed", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.Insert(ctx, &Order{
		ID:         uuid.New(),
		Kind:       kind,
		CustomerID: input.CustomerID,
		Items:      input.Items,
		TotalPrice: total,
		Status:     kind.InitialStatus(),
		PickupTime: *input.PickupTime,
		CreatedBy:  input.CreatedBy,
	})
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.recorder.OrderCreated(string(kind))
	s.onChange()

	log.Info("CreateOrder success",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.TotalPrice.StringFixed(2)),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, kind Kind) ([]*Order, error) {
	orders, err := s.repo.List(ctx, kind)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders", zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// Update merges the provided fields over the stored order and reprices it.
func (s *service) Update(ctx context.Context, kind Kind, id uuid.UUID, input UpdateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrder"),
		zap.String("kind", string(kind)),
		zap.String("order_id", id.String()),
	)
	log.Info("UpdateOrder started")

	if input.Items != nil {
		if err := validateLines(input.Items); err != nil {
			return nil, err
		}
	}
	if input.CustomerID != nil && *input.CustomerID == uuid.Nil {
		return nil, validationError("customer is required")
	}
	if input.PickupTime != nil && input.PickupTime.IsZero() {
		return nil, validationError("pickup time is required")
	}
	if input.Status != nil && !kind.ValidStatus(*input.Status) {
		return nil, validationError(fmt.Sprintf("unknown status %q", *input.Status))
	}

	existing, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		log.Warn("order lookup failed", zap.Error(err))
		return nil, err
	}

	merged := *existing
	if input.CustomerID != nil && *input.CustomerID != existing.CustomerID {
		if _, err := s.customers.Get(ctx, *input.CustomerID); err != nil {
			log.Warn("customer lookup failed", zap.Error(err))
			return nil, err
		}
		merged.CustomerID = *input.CustomerID
	}
	if input.Items != nil {
		merged.Items = input.Items
	}
	if input.PickupTime != nil {
		merged.PickupTime = *input.PickupTime
	}
	if input.Status != nil {
		merged.Status = *input.Status
	}

	merged.TotalPrice, err = s.pricer.Total(ctx, kind, merged.Items)
	if err != nil {
		log.Warn("pricing failed", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.Update(ctx, &merged)
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		return nil, err
	}

	if input.Status != nil && *input.Status != existing.Status {
		s.recorder.StatusUpdated(string(kind), string(o.Status))
	}
	s.onChange()

	log.Info("UpdateOrder success")
	return o, nil
}

// UpdateStatus changes only the status. Any enumerated status is reachable
// from any other.
func (s *service) UpdateStatus(ctx context.Context, kind Kind, id uuid.UUID, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("kind", string(kind)),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	if !kind.ValidStatus(status) {
		log.Warn("unknown status")
		return nil, validationError(fmt.Sprintf("unknown status %q", status))
	}

	o, err := s.repo.UpdateStatus(ctx, kind, id, status)
	if err != nil {
		log.Warn("failed to update status", zap.Error(err))
		return nil, err
	}

	s.recorder.StatusUpdated(string(kind), string(status))
	s.onChange()

	log.Info("UpdateOrderStatus success")
	return o, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrder"),
		zap.String("kind", string(kind)),
		zap.String("order_id", id.String()),
	)

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		log.Warn("failed to delete order", zap.Error(err))
		return err
	}

	s.onChange()
	log.Info("DeleteOrder success")
	return nil
}

// maxLineQty bounds a single line so quantities stay far from integer
// limits.
const maxLineQty = 100000

func validateLines(lines []Line) error {
	if len(lines) == 0 {
		return validationError("at least one item is required")
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ItemName) == "" {
			return validationError("item name is required")
		}
		if l.Qty <= 0 {
			return validationError(fmt.Sprintf("quantity for %q must be positive", l.ItemName))
		}
		if l.Qty > maxLineQty {
			return validationError(fmt.Sprintf("quantity for %q exceeds %d", l.ItemName, maxLineQty))
		}
	}
	return nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated(string) {}

func (nopRecorder) StatusUpdated(string, string) {}

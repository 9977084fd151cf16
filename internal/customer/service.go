package customer

import (
	"context"
	"errors"
	"strings"

	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCodeAttempts = 5

type Service interface {
	Create(ctx context.Context, fullName, phone string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	newCode  func() string
	onChange func()
}

type Option func(*service)

// WithChangeHook registers fn to run after the customer set grows or
// shrinks.
func WithChangeHook(fn func()) Option {
	return func(s *service) { s.onChange = fn }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:     repo,
		newCode:  utils.GenerateCustomerCode,
		onChange: func() {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, fullName, phone string) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCustomer"),
	)

	fullName, phone = strings.TrimSpace(fullName), strings.TrimSpace(phone)
	if fullName == "" || phone == "" {
		log.Warn("validation failed")
		return nil, ErrInvalidCustomer
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		c, err := s.repo.Create(ctx, &Customer{
			ID:           uuid.New(),
			CustomerCode: s.newCode(),
			FullName:     fullName,
			Phone:        phone,
		})
		if errors.Is(err, errCodeTaken) {
			log.Warn("retrying customer code", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			log.Error("failed to create customer", zap.Error(err))
			return nil, err
		}

		s.onChange()
		log.Info("customer created", zap.String("customer_id", c.ID.String()))
		return c, nil
	}

	return nil, errCodeTaken
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*Customer, error) {
	if blank(input.FullName) || blank(input.Phone) {
		return nil, ErrInvalidCustomer
	}
	input.FullName = utils.TrimmedOrNil(input.FullName)
	input.Phone = utils.TrimmedOrNil(input.Phone)

	c, err := s.repo.Update(ctx, id, input)
	if err != nil {
		logger.FromCtx(ctx).Warn("update customer failed",
			zap.String("customer_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

// Delete removes the customer. Orders keep their reference.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.onChange()
	logger.FromCtx(ctx).Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

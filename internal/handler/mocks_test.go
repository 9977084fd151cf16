package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"laundry-be/internal/customer"
	"laundry-be/internal/dashboard"
	"laundry-be/internal/item"
	"laundry-be/internal/order"
	"laundry-be/internal/user"
	"laundry-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, kind order.Kind, in order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, kind, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, kind order.Kind) ([]*order.Order, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, kind order.Kind, id uuid.UUID, in order.UpdateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, kind, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, kind order.Kind, id uuid.UUID, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, kind, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, kind order.Kind, id uuid.UUID) error {
	return m.Called(ctx, kind, id).Error(0)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, fullName, phone string) (*customer.Customer, error) {
	args := m.Called(ctx, fullName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, in customer.UpdateCustomerInput) (*customer.Customer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Create(ctx context.Context, name string, price decimal.Decimal) (*item.Item, error) {
	args := m.Called(ctx, name, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) List(ctx context.Context) ([]*item.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemService) PriceOf(ctx context.Context, name string) (decimal.Decimal, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Stats), args.Error(1)
}

func (m *MockDashboardService) Invalidate() {
	m.Called()
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) userResult(args mock.Arguments) (*user.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) RegisterAdmin(ctx context.Context, in user.RegisterInput, secretKey string) (*user.User, error) {
	return m.userResult(m.Called(ctx, in, secretKey))
}

func (m *MockUserService) RegisterCashier(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	return m.userResult(m.Called(ctx, in))
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Profile(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) (*user.User, error) {
	return m.userResult(m.Called(ctx, id, in))
}

func (m *MockUserService) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	return m.Called(ctx, id, password).Error(0)
}

func (m *MockUserService) AdminProfile(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.userResult(m.Called(ctx, id))
}

func (m *MockUserService) UpdateAdminProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate, secretKey string) (*user.User, error) {
	return m.userResult(m.Called(ctx, id, in, secretKey))
}

func (m *MockUserService) ListCashiers(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserService) UpdateCashier(ctx context.Context, id uuid.UUID, in user.CashierUpdate) (*user.User, error) {
	return m.userResult(m.Called(ctx, id, in))
}

func (m *MockUserService) DeleteCashier(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// asUser stands in for the auth middleware.
func asUser(id uuid.UUID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := utils.SetUserContext(r.Context(), id, "tester", role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func strPtr(s string) *string { return &s }

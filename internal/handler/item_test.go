package handler

import (
	"net/http"
	"testing"

	"laundry-be/internal/item"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func itemRouter(svc item.Service, role string) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(uuid.New(), role))
	r.Route("/api/items", NewItemHandler(svc).RegisterRoutes)
	return r
}

func TestItemHandler(t *testing.T) {
	shirt := &item.Item{ID: uuid.New(), Name: "Shirt", Price: decimal.RequireFromString("2.50")}

	t.Run("Create As Admin", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("Create", mock.Anything, "Shirt", mock.MatchedBy(func(p decimal.Decimal) bool {
			return p.Equal(decimal.RequireFromString("2.5"))
		})).Return(shirt, nil)

		rr := do(itemRouter(svc, utils.RoleAdmin), http.MethodPost, "/api/items", `{"name":"Shirt","price":2.5}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"price":2.5`)
	})

	t.Run("Create As Cashier Forbidden", func(t *testing.T) {
		svc := new(MockItemService)
		rr := do(itemRouter(svc, utils.RoleCashier), http.MethodPost, "/api/items", `{"name":"Shirt","price":2.5}`)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Create Missing Price", func(t *testing.T) {
		svc := new(MockItemService)
		rr := do(itemRouter(svc, utils.RoleAdmin), http.MethodPost, "/api/items", `{"name":"Shirt"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("Create", mock.Anything, "Shirt", mock.Anything).Return(nil, item.ErrItemExists)

		rr := do(itemRouter(svc, utils.RoleAdmin), http.MethodPost, "/api/items", `{"name":"Shirt","price":"3"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("List As Cashier", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("List", mock.Anything).Return([]*item.Item{shirt}, nil)

		rr := do(itemRouter(svc, utils.RoleCashier), http.MethodGet, "/api/items", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"_id":"`+shirt.ID.String()+`","name":"Shirt","price":2.5}]`, rr.Body.String())
	})

	t.Run("Delete", func(t *testing.T) {
		svc := new(MockItemService)
		svc.On("Delete", mock.Anything, shirt.ID).Return(nil)

		rr := do(itemRouter(svc, utils.RoleAdmin), http.MethodDelete, "/api/items/"+shirt.ID.String(), "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Item deleted"}`, rr.Body.String())
	})
}

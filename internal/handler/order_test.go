package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"laundry-be/internal/customer"
	"laundry-be/internal/order"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderRouter(svc order.Service, userID uuid.UUID) http.Handler {
	h := NewOrderHandler(svc)
	r := chi.NewRouter()
	r.Use(asUser(userID, utils.RoleCashier))
	r.Route("/api/orders/{kind}", h.RegisterRoutes)
	r.Route("/api/ironing", h.KindRoutes(order.KindIroning))
	return r
}

func sampleOrder(kind order.Kind, total string) *order.Order {
	cust := &customer.Customer{ID: uuid.New(), CustomerCode: "CUST-ABC123", FullName: "Ana", Phone: "555"}
	return &order.Order{
		ID:           uuid.New(),
		Kind:         kind,
		CustomerID:   cust.ID,
		Customer:     cust,
		Items:        []order.Line{{ItemName: "Shirt", Qty: 2}},
		TotalPrice:   decimal.RequireFromString(total),
		Status:       kind.InitialStatus(),
		PickupTime:   time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC),
		RegisterDate: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_Create(t *testing.T) {
	userID := uuid.New()
	customerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		created := sampleOrder(order.KindLaundry, "5.00")

		svc.On("Create", mock.Anything, order.KindLaundry, mock.MatchedBy(func(in order.CreateOrderInput) bool {
			return in.CustomerID == customerID &&
				len(in.Items) == 1 && in.Items[0].Qty == 2 &&
				in.PickupTime != nil && in.PickupTime.Equal(time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC)) &&
				in.CreatedBy != nil && *in.CreatedBy == userID
		})).Return(created, nil)

		body := `{"customer":"` + customerID.String() + `","items":[{"itemName":"Shirt","qty":2}],"pickupTime":"2026-10-20T10:30"}`
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/orders/laundry/", body)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var res map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, 5.0, res["totalPrice"])
		assert.NotContains(t, res, "ironingPrice")
		assert.Equal(t, "Pending", res["status"])
		assert.Equal(t, "Ana", res["customer"].(map[string]any)["fullName"])
		svc.AssertExpectations(t)
	})

	t.Run("Missing Customer", func(t *testing.T) {
		svc := new(MockOrderService)
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/orders/laundry/", `{"items":[{"itemName":"Shirt","qty":1}]}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bad Pickup Time", func(t *testing.T) {
		svc := new(MockOrderService)
		body := `{"customer":"` + customerID.String() + `","items":[{"itemName":"Shirt","qty":1}],"pickupTime":"tomorrow"}`
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/orders/laundry/", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		svc := new(MockOrderService)
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/orders/laundry/", `{"customer":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Customer Not Found", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Create", mock.Anything, order.KindIroning, mock.Anything).Return(nil, customer.ErrCustomerNotFound)

		body := `{"customer":"` + customerID.String() + `","items":[{"itemName":"Shirt","qty":1}],"pickupTime":"2026-10-20"}`
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/ironing/", body)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		svc := new(MockOrderService)
		rr := do(orderRouter(svc, userID), http.MethodPost, "/api/orders/dryclean/", `{}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown order kind")
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("Ironing Uses ironingPrice", func(t *testing.T) {
		svc := new(MockOrderService)
		o := sampleOrder(order.KindIroning, "1.00")
		o.Customer = nil
		svc.On("List", mock.Anything, order.KindIroning).Return([]*order.Order{o}, nil)

		rr := do(orderRouter(svc, uuid.New()), http.MethodGet, "/api/orders/ironing/", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		var res []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		require.Len(t, res, 1)
		assert.Equal(t, 1.0, res[0]["ironingPrice"])
		assert.NotContains(t, res[0], "totalPrice")
		assert.Nil(t, res[0]["customer"])
	})

	t.Run("Empty Is Array", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("List", mock.Anything, order.KindLaundry).Return([]*order.Order{}, nil)

		rr := do(orderRouter(svc, uuid.New()), http.MethodGet, "/api/orders/laundry/", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Service Error Is Hidden", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("List", mock.Anything, order.KindLaundry).Return(nil, errors.New("pq: connection refused"))

		rr := do(orderRouter(svc, uuid.New()), http.MethodGet, "/api/orders/laundry/", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "pq:")
	})
}

func TestOrderHandler_Update(t *testing.T) {
	id := uuid.New()

	t.Run("Partial Fields", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Update", mock.Anything, order.KindLaundry, id, mock.MatchedBy(func(in order.UpdateOrderInput) bool {
			return in.CustomerID == nil && in.Items == nil && in.PickupTime == nil &&
				in.Status != nil && *in.Status == order.LaundryCompleted
		})).Return(sampleOrder(order.KindLaundry, "5.00"), nil)

		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/orders/laundry/"+id.String(), `{"status":"Completed"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Empty Items Passed Through", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Update", mock.Anything, order.KindLaundry, id, mock.MatchedBy(func(in order.UpdateOrderInput) bool {
			return in.Items != nil && len(in.Items) == 0
		})).Return(nil, order.ErrValidation)

		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/orders/laundry/"+id.String(), `{"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad ID", func(t *testing.T) {
		svc := new(MockOrderService)
		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/orders/laundry/nope", `{}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Empty Pickup Rejected", func(t *testing.T) {
		svc := new(MockOrderService)
		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/orders/laundry/"+id.String(), `{"pickupTime":""}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		o := sampleOrder(order.KindIroning, "1.00")
		o.Status = order.IroningReady
		svc.On("UpdateStatus", mock.Anything, order.KindIroning, id, order.IroningReady).Return(o, nil)

		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/ironing/"+id.String()+"/status", `{"status":"ready"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"ready"`)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, order.KindLaundry, id, order.LaundryDelivered).Return(nil, order.ErrOrderNotFound)

		rr := do(orderRouter(svc, uuid.New()), http.MethodPut, "/api/orders/laundry/"+id.String()+"/status", `{"status":"Delivered"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	id := uuid.New()
	svc := new(MockOrderService)
	svc.On("Delete", mock.Anything, order.KindLaundry, id).Return(nil)

	rr := do(orderRouter(svc, uuid.New()), http.MethodDelete, "/api/orders/laundry/"+id.String(), "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Order deleted successfully"}`, rr.Body.String())
}

func TestParsePickupTime(t *testing.T) {
	want := time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC)

	for _, raw := range []string{"2026-10-20T10:30:00Z", "2026-10-20T10:30:00", "2026-10-20T10:30"} {
		got, err := parsePickupTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(*got), raw)
	}

	got, err := parsePickupTime("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, 20, got.Day())

	got, err = parsePickupTime("  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = parsePickupTime("20/10/2026")
	assert.ErrorIs(t, err, order.ErrValidation)
}

package handler

import (
	"errors"
	"net/http"
	"testing"

	"laundry-be/internal/dashboard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardHandler_Stats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("Stats", mock.Anything).Return(&dashboard.Stats{
			TotalCustomers:      3,
			TotalIroningRevenue: decimal.RequireFromString("1.50"),
			TotalLaundryRevenue: decimal.RequireFromString("7.00"),
			IroningItems:        []dashboard.ItemAgg{{Name: "Shirt", Qty: 3, Revenue: decimal.RequireFromString("1.50")}},
			LaundryStatuses:     []dashboard.StatusAgg{{Status: "Pending", Count: 2}},
		}, nil)

		rr := do(http.HandlerFunc(NewDashboardHandler(svc).Stats), http.MethodGet, "/api/dashboard", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{
			"totalCustomers": 3,
			"totalIroningRevenue": 1.5,
			"totalLaundryRevenue": 7,
			"ironingItemsAgg": [{"_id":"Shirt","totalQty":3,"totalRevenue":1.5}],
			"laundryItemsAgg": [],
			"ironingStatusAgg": [],
			"laundryStatusAgg": [{"_id":"Pending","count":2}]
		}`, rr.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("Stats", mock.Anything).Return(nil, errors.New("boom"))

		rr := do(http.HandlerFunc(NewDashboardHandler(svc).Stats), http.MethodGet, "/api/dashboard", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

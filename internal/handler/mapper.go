package handler

import (
	"time"

	"laundry-be/internal/customer"
	"laundry-be/internal/dashboard"
	"laundry-be/internal/item"
	"laundry-be/internal/order"

	"github.com/google/uuid"
)

type messageResponse struct {
	Message string `json:"message"`
}

type lineResponse struct {
	ItemName string `json:"itemName"`
	Qty      int    `json:"qty"`
}

// orderResponse carries the price under the kind's field name: totalPrice
// for laundry, ironingPrice for ironing.
type orderResponse struct {
	ID           uuid.UUID          `json:"_id"`
	Kind         order.Kind         `json:"kind"`
	Customer     *customer.Customer `json:"customer"`
	Items        []lineResponse     `json:"items"`
	TotalPrice   *float64           `json:"totalPrice,omitempty"`
	IroningPrice *float64           `json:"ironingPrice,omitempty"`
	Status       order.Status       `json:"status"`
	PickupTime   time.Time          `json:"pickupTime"`
	RegisterDate time.Time          `json:"registerDate"`
	CreatedBy    *uuid.UUID         `json:"createdBy,omitempty"`
}

func toOrderResponse(o *order.Order) orderResponse {
	lines := make([]lineResponse, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, lineResponse{ItemName: l.ItemName, Qty: l.Qty})
	}

	price := o.TotalPrice.InexactFloat64()
	res := orderResponse{
		ID:           o.ID,
		Kind:         o.Kind,
		Customer:     o.Customer,
		Items:        lines,
		Status:       o.Status,
		PickupTime:   o.PickupTime,
		RegisterDate: o.RegisterDate,
		CreatedBy:    o.CreatedBy,
	}
	if o.Kind == order.KindIroning {
		res.IroningPrice = &price
	} else {
		res.TotalPrice = &price
	}
	return res
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type itemResponse struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

func toItemResponse(it *item.Item) itemResponse {
	return itemResponse{ID: it.ID, Name: it.Name, Price: it.Price.InexactFloat64()}
}

type itemAggResponse struct {
	ID           string  `json:"_id"`
	TotalQty     int64   `json:"totalQty"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type statusAggResponse struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type dashboardResponse struct {
	TotalCustomers      int64               `json:"totalCustomers"`
	TotalIroningRevenue float64             `json:"totalIroningRevenue"`
	TotalLaundryRevenue float64             `json:"totalLaundryRevenue"`
	IroningItemsAgg     []itemAggResponse   `json:"ironingItemsAgg"`
	LaundryItemsAgg     []itemAggResponse   `json:"laundryItemsAgg"`
	IroningStatusAgg    []statusAggResponse `json:"ironingStatusAgg"`
	LaundryStatusAgg    []statusAggResponse `json:"laundryStatusAgg"`
}

func toDashboardResponse(st *dashboard.Stats) dashboardResponse {
	return dashboardResponse{
		TotalCustomers:      st.TotalCustomers,
		TotalIroningRevenue: st.TotalIroningRevenue.InexactFloat64(),
		TotalLaundryRevenue: st.TotalLaundryRevenue.InexactFloat64(),
		IroningItemsAgg:     toItemAggs(st.IroningItems),
		LaundryItemsAgg:     toItemAggs(st.LaundryItems),
		IroningStatusAgg:    toStatusAggs(st.IroningStatuses),
		LaundryStatusAgg:    toStatusAggs(st.LaundryStatuses),
	}
}

func toItemAggs(in []dashboard.ItemAgg) []itemAggResponse {
	out := make([]itemAggResponse, 0, len(in))
	for _, a := range in {
		out = append(out, itemAggResponse{ID: a.Name, TotalQty: a.Qty, TotalRevenue: a.Revenue.InexactFloat64()})
	}
	return out
}

func toStatusAggs(in []dashboard.StatusAgg) []statusAggResponse {
	out := make([]statusAggResponse, 0, len(in))
	for _, a := range in {
		out = append(out, statusAggResponse{ID: a.Status, Count: a.Count})
	}
	return out
}

package handler

import (
	"context"
	"net/http"

	"laundry-be/internal/order"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type kindKey struct{}

// OrderHandler serves both order kinds. The kind comes from the {kind}
// path segment or is fixed by the mount point.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes expects to be mounted under a path with a {kind} segment.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Use(kindFromPath)
	h.routes(r)
}

// KindRoutes mounts the same endpoints for a single fixed kind.
func (h *OrderHandler) KindRoutes(kind order.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(fixedKind(kind))
		h.routes(r)
	}
}

func (h *OrderHandler) routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
}

func kindFromPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := order.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			transport.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindKey{}, kind)))
	})
}

func fixedKind(kind order.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindKey{}, kind)))
		})
	}
}

func kindOf(r *http.Request) order.Kind {
	kind, _ := r.Context().Value(kindKey{}).(order.Kind)
	return kind
}

type createOrderRequest struct {
	Customer   string       `json:"customer"`
	Items      []order.Line `json:"items"`
	PickupTime string       `json:"pickupTime"`
}

type updateOrderRequest struct {
	Customer   *string      `json:"customer"`
	Items      []order.Line `json:"items"`
	PickupTime *string      `json:"pickupTime"`
	Status     *string      `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		transport.WriteError(w, err)
		return
	}
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		in.CreatedBy = &id
	}

	o, err := h.svc.Create(r.Context(), kindOf(r), in)
	if err != nil {
		respondError(w, r, "create order", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (req createOrderRequest) toInput() (order.CreateOrderInput, error) {
	var in order.CreateOrderInput

	if req.Customer == "" {
		return in, validationError("customer is required")
	}
	customerID, err := uuid.Parse(req.Customer)
	if err != nil {
		return in, validationError("customer must be a valid id")
	}
	pickup, err := parsePickupTime(req.PickupTime)
	if err != nil {
		return in, err
	}

	in.CustomerID = customerID
	in.Items = req.Items
	in.PickupTime = pickup
	return in, nil
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context(), kindOf(r))
	if err != nil {
		respondError(w, r, "list orders", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	var req updateOrderRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	o, err := h.svc.Update(r.Context(), kindOf(r), id, in)
	if err != nil {
		respondError(w, r, "update order", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (req updateOrderRequest) toInput() (order.UpdateOrderInput, error) {
	var in order.UpdateOrderInput

	if req.Customer != nil {
		customerID, err := uuid.Parse(*req.Customer)
		if err != nil {
			return in, validationError("customer must be a valid id")
		}
		in.CustomerID = &customerID
	}
	if req.PickupTime != nil {
		pickup, err := parsePickupTime(*req.PickupTime)
		if err != nil {
			return in, err
		}
		if pickup == nil {
			return in, validationError("pickupTime cannot be empty")
		}
		in.PickupTime = pickup
	}
	if req.Status != nil {
		status := order.Status(*req.Status)
		in.Status = &status
	}
	in.Items = req.Items
	return in, nil
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	var req updateStatusRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), kindOf(r), id, order.Status(req.Status))
	if err != nil {
		respondError(w, r, "update order status", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), kindOf(r), id); err != nil {
		respondError(w, r, "delete order", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Order deleted successfully"})
}

package handler

import (
	"net/http"

	"laundry-be/internal/customer"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	svc customer.Service
}

func NewCustomerHandler(svc customer.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type customerRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), utils.PtrString(req.FullName), utils.PtrString(req.Phone))
	if err != nil {
		respondError(w, r, "create customer", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, "list customers", err)
		return
	}
	if customers == nil {
		customers = []*customer.Customer{}
	}
	transport.WriteJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, "get customer", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	var req customerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, customer.UpdateCustomerInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(w, r, "update customer", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, "delete customer", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Customer deleted successfully"})
}

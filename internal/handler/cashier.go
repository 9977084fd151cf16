package handler

import (
	"net/http"

	"laundry-be/internal/transport"
	"laundry-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// CashierHandler is the admin's cashier management surface.
type CashierHandler struct {
	svc user.Service
}

func NewCashierHandler(svc user.Service) *CashierHandler {
	return &CashierHandler{svc: svc}
}

// RegisterRoutes expects AdminOnly to run first.
func (h *CashierHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type cashierRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

type cashierResponse struct {
	Message string     `json:"message"`
	Cashier *user.User `json:"cashier"`
}

func (h *CashierHandler) List(w http.ResponseWriter, r *http.Request) {
	cashiers, err := h.svc.ListCashiers(r.Context())
	if err != nil {
		respondError(w, r, "list cashiers", err)
		return
	}
	if cashiers == nil {
		cashiers = []*user.User{}
	}
	transport.WriteJSON(w, http.StatusOK, cashiers)
}

func (h *CashierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.RegisterCashier(r.Context(), req.input())
	if err != nil {
		respondError(w, r, "create cashier", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, cashierResponse{Message: "Cashier created", Cashier: u})
}

func (h *CashierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	var req cashierRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}

	u, err := h.svc.UpdateCashier(r.Context(), id, user.CashierUpdate{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, "update cashier", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, cashierResponse{Message: "Cashier updated", Cashier: u})
}

func (h *CashierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	if err := h.svc.DeleteCashier(r.Context(), id); err != nil {
		respondError(w, r, "delete cashier", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Cashier deleted"})
}

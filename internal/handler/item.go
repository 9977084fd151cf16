package handler

import (
	"net/http"

	"laundry-be/internal/item"
	"laundry-be/internal/middleware"
	"laundry-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	svc item.Service
}

func NewItemHandler(svc item.Service) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// RegisterRoutes lets any signed-in user read the catalog; changing it is
// admin-only.
func (h *ItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.With(middleware.AdminOnly).Post("/", h.Create)
	r.With(middleware.AdminOnly).Delete("/{id}", h.Delete)
}

type createItemRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := transport.DecodeJSON(r, &req); err != nil {
		transport.WriteError(w, err)
		return
	}
	if req.Price == nil {
		transport.WriteError(w, item.ErrInvalidItem)
		return
	}

	it, err := h.svc.Create(r.Context(), req.Name, *req.Price)
	if err != nil {
		respondError(w, r, "create item", err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, toItemResponse(it))
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, "list items", err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	transport.WriteJSON(w, http.StatusOK, out)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, "delete item", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: "Item deleted"})
}

package handler

import (
	"net/http"

	"laundry-be/internal/dashboard"
	"laundry-be/internal/transport"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		respondError(w, r, "dashboard stats", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toDashboardResponse(st))
}

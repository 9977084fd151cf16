package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"laundry-be/internal/logger"
	"laundry-be/internal/order"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// pickupLayouts are tried in order. Browser datetime-local inputs send the
// minute-precision form without a zone, which is read as UTC.
var pickupLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parsePickupTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range pickupLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid pickup time %q", order.ErrValidation, raw)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, transport.ErrBadID
	}
	return id, nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", order.ErrValidation, msg)
}

// respondError writes err with its mapped status. Only unmapped failures
// are logged; client errors are already visible in the access log.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if transport.StatusFor(err) == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error(op+" failed",
			zap.String("layer", "handler"),
			zap.String("path", r.URL.Path),
			zap.String("username", utils.GetUserNameFromContext(r.Context())),
			zap.Error(err),
		)
	}
	transport.WriteError(w, err)
}

package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"laundry-be/internal/customer"
	"laundry-be/internal/item"
	"laundry-be/internal/order"
	"laundry-be/internal/user"
)

const maxBodyBytes = 1 << 20

var (
	ErrBadRequest   = errors.New("malformed request body")
	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("admin only")
	ErrBadID        = errors.New("invalid id")
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// WriteError maps err to its HTTP status. Unmapped errors are reported as
// a generic 500 so driver details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	WriteJSONError(w, msg, code)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrCashierNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrUnknownKind),
		errors.Is(err, customer.ErrInvalidCustomer),
		errors.Is(err, item.ErrInvalidItem),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrPasswordRequired),
		errors.Is(err, user.ErrWrongPassword),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrBadID):
		return http.StatusBadRequest

	case errors.Is(err, item.ErrItemExists),
		errors.Is(err, user.ErrUsernameExists):
		return http.StatusConflict

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, user.ErrInvalidSecretKey),
		errors.Is(err, user.ErrAdminRequired),
		errors.Is(err, ErrForbidden):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads one JSON object from r's body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

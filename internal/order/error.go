package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUnknownKind   = errors.New("unknown order kind")
	ErrValidation    = errors.New("invalid order")
)

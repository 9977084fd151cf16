package item

import "errors"

var (
	ErrItemNotFound = errors.New("item not found")
	ErrItemExists   = errors.New("item already exists")
	ErrInvalidItem  = errors.New("item name is required and price must be non-negative")
)

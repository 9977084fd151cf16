package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidCustomer  = errors.New("full name and phone are required")

	errCodeTaken = errors.New("customer code already taken")
)

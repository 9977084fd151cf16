package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID           uuid.UUID `json:"_id"`
	CustomerCode string    `json:"customerId"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone"`
	RegisterDate time.Time `json:"registerDate"`
}

type UpdateCustomerInput struct {
	FullName *string
	Phone    *string
}

package order

import (
	"time"

	"laundry-be/internal/customer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind selects the pricing rule and the status enumeration of an order.
type Kind string

const (
	KindLaundry Kind = "laundry"
	KindIroning Kind = "ironing"
)

type Status string

const (
	LaundryPending    Status = "Pending"
	LaundryInProgress Status = "In-Progress"
	LaundryCompleted  Status = "Completed"
	LaundryDelivered  Status = "Delivered"

	IroningPending   Status = "pending"
	IroningReady     Status = "ready"
	IroningDelivered Status = "delivered"
)

var statuses = map[Kind][]Status{
	KindLaundry: {LaundryPending, LaundryInProgress, LaundryCompleted, LaundryDelivered},
	KindIroning: {IroningPending, IroningReady, IroningDelivered},
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLaundry, KindIroning:
		return k, nil
	default:
		return "", ErrUnknownKind
	}
}

// Statuses lists the kind's enumeration, initial status first.
func (k Kind) Statuses() []Status {
	return append([]Status(nil), statuses[k]...)
}

func (k Kind) InitialStatus() Status {
	return statuses[k][0]
}

func (k Kind) ValidStatus(s Status) bool {
	for _, st := range statuses[k] {
		if st == s {
			return true
		}
	}
	return false
}

// Line is one embedded order line. Lines persist name and quantity only.
type Line struct {
	ItemName string `json:"itemName"`
	Qty      int    `json:"qty"`
}

type Order struct {
	ID           uuid.UUID
	Kind         Kind
	CustomerID   uuid.UUID
	Customer     *customer.Customer // nil when the reference dangles
	Items        []Line
	TotalPrice   decimal.Decimal
	Status       Status
	PickupTime   time.Time
	RegisterDate time.Time
	CreatedBy    *uuid.UUID
}

type CreateOrderInput struct {
	CustomerID uuid.UUID
	Items      []Line
	PickupTime *time.Time
	CreatedBy  *uuid.UUID
}

// UpdateOrderInput is a partial full-update: nil fields keep the stored
// value. A non-nil empty Items slice is rejected rather than treated as
// "omitted".
type UpdateOrderInput struct {
	CustomerID *uuid.UUID
	Items      []Line
	PickupTime *time.Time
	Status     *Status
}

package item

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry. Laundry lines reference it by Name.
type Item struct {
	ID    uuid.UUID       `json:"_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

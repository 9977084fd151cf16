package dashboard

import "github.com/shopspring/decimal"

// ItemAgg is the per-item quantity and revenue of one order kind.
type ItemAgg struct {
	Name    string
	Qty     int64
	Revenue decimal.Decimal
}

type StatusAgg struct {
	Status string
	Count  int64
}

type Stats struct {
	TotalCustomers      int64
	TotalIroningRevenue decimal.Decimal
	TotalLaundryRevenue decimal.Decimal
	IroningItems        []ItemAgg
	LaundryItems        []ItemAgg
	IroningStatuses     []StatusAgg
	LaundryStatuses     []StatusAgg
}

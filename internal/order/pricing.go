package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog resolves laundry unit prices by item name. Implementations
// return an error wrapping item.ErrItemNotFound for unknown names.
type Catalog interface {
	PriceOf(ctx context.Context, name string) (decimal.Decimal, error)
}

// maxTotal is the first amount a NUMERIC(12,2) column cannot hold.
var maxTotal = decimal.New(1, 10)

// Pricer computes server-side order totals.
type Pricer struct {
	catalog     Catalog
	ironingRate decimal.Decimal
}

func NewPricer(catalog Catalog, ironingRate decimal.Decimal) *Pricer {
	return &Pricer{catalog: catalog, ironingRate: ironingRate}
}

func (p *Pricer) IroningRate() decimal.Decimal {
	return p.ironingRate
}

// Total prices lines under kind's rule. Laundry looks each distinct item
// name up once; ironing charges the flat rate per unit. A total too large
// to store is a validation error.
func (p *Pricer) Total(ctx context.Context, kind Kind, lines []Line) (decimal.Decimal, error) {
	var (
		total decimal.Decimal
		err   error
	)
	switch kind {
	case KindLaundry:
		total, err = p.laundryTotal(ctx, lines)
	case KindIroning:
		total = p.ironingTotal(lines)
	default:
		return decimal.Zero, ErrUnknownKind
	}
	if err != nil {
		return decimal.Zero, err
	}
	if total.GreaterThanOrEqual(maxTotal) {
		return decimal.Zero, validationError("order total is too large")
	}
	return total, nil
}

func (p *Pricer) laundryTotal(ctx context.Context, lines []Line) (decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(lines))
	total := decimal.Zero

	for _, l := range lines {
		price, ok := prices[l.ItemName]
		if !ok {
			var err error
			price, err = p.catalog.PriceOf(ctx, l.ItemName)
			if err != nil {
				return decimal.Zero, fmt.Errorf("price %q: %w", l.ItemName, err)
			}
			prices[l.ItemName] = price
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}

	return total, nil
}

func (p *Pricer) ironingTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(p.ironingRate.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

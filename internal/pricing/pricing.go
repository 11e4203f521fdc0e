// Package pricing computes cart and order totals.
//
// All amounts are rounded to two decimal places, half away from zero. Shipping
// is free above FreeShippingThreshold and FlatShipping otherwise; tax is TaxRate
// of the items price.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrComputation = errors.New("price computation failed")

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShipping          = decimal.NewFromInt(10)
	TaxRate               = decimal.RequireFromString("0.15")
)

type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Prices struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Zero is the price of an empty cart.
func Zero() Prices {
	return Prices{
		ItemsPrice:    decimal.Zero,
		ShippingPrice: decimal.Zero,
		TaxPrice:      decimal.Zero,
		TotalPrice:    decimal.Zero,
	}
}

func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Calculate prices a list of line items. An empty list prices to Zero.
func Calculate(items []LineItem) (Prices, error) {
	if len(items) == 0 {
		return Zero(), nil
	}

	sum := decimal.Zero
	for i, item := range items {
		if item.UnitPrice.IsNegative() {
			return Prices{}, fmt.Errorf("%w: item %d has negative unit price %s", ErrComputation, i, item.UnitPrice)
		}
		if item.Quantity < 1 {
			return Prices{}, fmt.Errorf("%w: item %d has quantity %d", ErrComputation, i, item.Quantity)
		}
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	itemsPrice := Round2(sum)

	shipping := FlatShipping
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := Round2(itemsPrice.Mul(TaxRate))
	total := Round2(itemsPrice.Add(shipping).Add(tax))

	return Prices{
		ItemsPrice:    itemsPrice,
		ShippingPrice: Round2(shipping),
		TaxPrice:      tax,
		TotalPrice:    total,
	}, nil
}

// Package pricing holds the checkout rule shared by the cart preview and
// order creation.
package pricing

import (
	"github.com/shopspring/decimal"

	"intellivend/internal/domain"
)

var (
	TaxRate               = decimal.RequireFromString("0.08")
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShipping          = decimal.NewFromInt(15)
)

type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Quote computes subtotal + 8% tax + shipping (free above 100, else 15).
// Prices are taken at their shortest decimal representation so 0.1 stays 0.1.
func Quote(items []domain.CartItem) Breakdown {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	ship := FlatShipping
	if sub.GreaterThan(FreeShippingThreshold) {
		ship = decimal.Zero
	}
	tax := sub.Mul(TaxRate)
	return Breakdown{Subtotal: sub, Tax: tax, Shipping: ship, Total: sub.Add(tax).Add(ship)}
}

// GrandTotal is the order total stored on an Order.
func GrandTotal(items []domain.CartItem) float64 {
	return Quote(items).Total.InexactFloat64()
}

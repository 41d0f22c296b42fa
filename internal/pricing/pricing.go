// Package pricing derives a cost breakdown from a cart snapshot.
//
// All arithmetic is done on exact decimals; nothing is rounded until a value
// is formatted for display.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Rates are the fees and percentages the engine applies. Standard shipping is
// free once the subtotal reaches FreeShippingThreshold.
type Rates struct {
	TaxRate               decimal.Decimal
	SavingsRate           decimal.Decimal
	GiftWrapFee           decimal.Decimal
	ExpressShippingFee    decimal.Decimal
	StandardShippingFee   decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// DefaultRates are the storefront's published rates.
func DefaultRates() Rates {
	return Rates{
		TaxRate:               decimal.RequireFromString("0.08"),
		SavingsRate:           decimal.RequireFromString("0.10"),
		GiftWrapFee:           decimal.RequireFromString("4.99"),
		ExpressShippingFee:    decimal.RequireFromString("9.99"),
		StandardShippingFee:   decimal.RequireFromString("5.99"),
		FreeShippingThreshold: decimal.NewFromInt(100),
	}
}

// Options are the checkout choices that affect the breakdown.
type Options struct {
	// Discount is nil when no promo is applied.
	Discount        *Discount
	GiftWrap        bool
	ExpressShipping bool
}

// Breakdown is the full cost structure for one cart and option set.
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Savings     decimal.Decimal `json:"savings"`
	Discount    decimal.Decimal `json:"discount"`
	GiftWrapFee decimal.Decimal `json:"gift_wrap_fee"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// Engine computes breakdowns. It holds no state besides its rates and is safe
// for concurrent use.
type Engine struct {
	rates Rates
}

// NewEngine returns an engine using rates.
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Rates returns the engine's rates.
func (e *Engine) Rates() Rates {
	return e.rates
}

// Calculate prices items under opts. An empty cart costs nothing: no
// shipping, no gift wrap, no tax.
func (e *Engine) Calculate(items []domain.CartLineItem, opts Options) Breakdown {
	b := Breakdown{
		Subtotal:    decimal.Zero,
		Savings:     decimal.Zero,
		Discount:    decimal.Zero,
		GiftWrapFee: decimal.Zero,
		ShippingFee: decimal.Zero,
		Tax:         decimal.Zero,
		Total:       decimal.Zero,
	}
	if len(items) == 0 {
		return b
	}

	for _, item := range items {
		line := item.LineTotal()
		b.Subtotal = b.Subtotal.Add(line)
		b.Savings = b.Savings.Add(line.Mul(e.rates.SavingsRate))
	}

	if opts.Discount != nil {
		b.Discount = opts.Discount.Amount(b.Subtotal)
	}

	if opts.GiftWrap {
		b.GiftWrapFee = e.rates.GiftWrapFee
	}

	switch {
	case opts.ExpressShipping:
		b.ShippingFee = e.rates.ExpressShippingFee
	case b.Subtotal.GreaterThanOrEqual(e.rates.FreeShippingThreshold):
		b.ShippingFee = decimal.Zero
	default:
		b.ShippingFee = e.rates.StandardShippingFee
	}

	base := b.Subtotal.Sub(b.Discount).Add(b.GiftWrapFee).Add(b.ShippingFee)
	b.Tax = base.Mul(e.rates.TaxRate)
	b.Total = base.Add(b.Tax)

	return b
}

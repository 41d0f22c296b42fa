package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind says how a Discount's value is applied.
type DiscountKind string

const (
	// Percentage values are in percent: 10 means 10% off the subtotal.
	Percentage DiscountKind = "percentage"
	// FixedAmount values are taken off the subtotal as-is.
	FixedAmount DiscountKind = "fixed_amount"
)

// ParseDiscountKind accepts the canonical names plus "percent" and "flat".
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent":
		return Percentage, nil
	case "fixed_amount", "fixed", "flat":
		return FixedAmount, nil
	default:
		return "", fmt.Errorf("unknown discount kind %q", s)
	}
}

// Discount is a resolved promo: what kind of reduction and how much.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Amount is the reduction for subtotal, clamped to [0, subtotal] so a flat
// promo on a small cart never produces a negative total.
func (d Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Kind {
	case Percentage:
		amount = subtotal.Mul(d.Value).Div(hundred)
	case FixedAmount:
		amount = d.Value
	default:
		return decimal.Zero
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(amount, subtotal)
}

// String renders the discount the way a shopper sees it: "10%" or "$50.00".
func (d Discount) String() string {
	if d.Kind == Percentage {
		return d.Value.String() + "%"
	}
	return FormatPrice(d.Value)
}

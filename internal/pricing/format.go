package pricing

import "github.com/shopspring/decimal"

// FormatPrice rounds half away from zero to cents and prefixes a dollar sign.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Display is a Breakdown rounded once for presentation.
type Display struct {
	Subtotal    string `json:"subtotal"`
	Savings     string `json:"savings"`
	Discount    string `json:"discount"`
	GiftWrapFee string `json:"gift_wrap_fee"`
	ShippingFee string `json:"shipping_fee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

// Display formats every field of b. Zero shipping reads "Free".
func (b Breakdown) Display() Display {
	shipping := FormatPrice(b.ShippingFee)
	if b.ShippingFee.IsZero() {
		shipping = "Free"
	}

	return Display{
		Subtotal:    FormatPrice(b.Subtotal),
		Savings:     FormatPrice(b.Savings),
		Discount:    FormatPrice(b.Discount),
		GiftWrapFee: FormatPrice(b.GiftWrapFee),
		ShippingFee: shipping,
		Tax:         FormatPrice(b.Tax),
		Total:       FormatPrice(b.Total),
	}
}

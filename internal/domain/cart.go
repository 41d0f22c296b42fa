package domain

import (
	"maps"

	"github.com/shopspring/decimal"
)

// Variants maps a variant dimension such as "color" to the chosen value.
type Variants map[string]string

// DefaultVariants is the selection recorded when the caller supplies none.
func DefaultVariants() Variants {
	return Variants{"color": "default", "size": "standard"}
}

// CartLineItem is one product in the cart. Product fields are flattened into
// the line so the persisted record matches the product shape.
type CartLineItem struct {
	Product
	Quantity         int      `json:"quantity"`
	SelectedVariants Variants `json:"selectedVariants,omitempty"`
}

// LineTotal is price times quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a deep copy of the line.
func (i CartLineItem) Clone() CartLineItem {
	i.Product = i.Product.Clone()
	i.SelectedVariants = maps.Clone(i.SelectedVariants)
	return i
}

// WishlistItem is a product saved for later.
type WishlistItem struct {
	Product
}

// Clone returns a deep copy of the entry.
func (w WishlistItem) Clone() WishlistItem {
	w.Product = w.Product.Clone()
	return w
}

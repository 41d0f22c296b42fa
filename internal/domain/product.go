package domain

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Product is a catalog item as returned by the product search API. Only
// ProductID and ExtractedPrice carry meaning for the cart; the rest is
// display data passed through untouched.
type Product struct {
	ProductID      string  `json:"product_id" validate:"required"`
	Title          string  `json:"title" validate:"required"`
	ExtractedPrice float64 `json:"extracted_price" validate:"gte=0"`

	Position          int            `json:"position,omitempty"`
	Link              string         `json:"link,omitempty"`
	ProductLink       string         `json:"product_link,omitempty"`
	SerpAPIProductAPI string         `json:"serpapi_product_api,omitempty"`
	Source            string         `json:"source,omitempty"`
	Price             string         `json:"price,omitempty"`
	Rating            float64        `json:"rating,omitempty"`
	Reviews           int            `json:"reviews,omitempty"`
	Thumbnail         string         `json:"thumbnail,omitempty"`
	Delivery          string         `json:"delivery,omitempty"`
	Brand             string         `json:"brand,omitempty"`
	Category          string         `json:"category,omitempty"`
	Description       string         `json:"description,omitempty"`
	Images            []string       `json:"images,omitempty"`
	Specifications    map[string]any `json:"specifications,omitempty"`
}

// UnitPrice returns the extracted price as an exact decimal.
func (p Product) UnitPrice() decimal.Decimal {
	return decimal.NewFromFloat(p.ExtractedPrice)
}

// DisplayBrand is the brand, or the selling source when no brand is known.
func (p Product) DisplayBrand() string {
	if p.Brand != "" {
		return p.Brand
	}
	return p.Source
}

// Clone returns a copy that shares no slices or maps with p.
func (p Product) Clone() Product {
	p.Images = slices.Clone(p.Images)
	p.Specifications = maps.Clone(p.Specifications)
	return p
}

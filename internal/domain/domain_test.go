package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightempire/e-commerce-frontend/pkg/validator"
)

func product(id string, price float64) Product {
	return Product{ProductID: id, Title: "Product " + id, ExtractedPrice: price, Source: "Shop"}
}

func TestProduct_DisplayBrand(t *testing.T) {
	p := product("p1", 1)
	assert.Equal(t, "Shop", p.DisplayBrand())

	p.Brand = "Acme"
	assert.Equal(t, "Acme", p.DisplayBrand())
}

func TestProduct_Validation(t *testing.T) {
	err := validator.Validate(Product{ExtractedPrice: -1})
	require.Error(t, err)

	var valErr *validator.ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "product_id")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "extracted_price")

	assert.NoError(t, validator.Validate(product("p1", 0)))
}

func TestProduct_UnitPriceIsExact(t *testing.T) {
	p := product("p1", 19.99)
	assert.True(t, p.UnitPrice().Equal(decimal.RequireFromString("19.99")))
}

func TestState_TotalsAndCount(t *testing.T) {
	s := NewState()
	assert.True(t, s.CartTotal().IsZero())
	assert.Equal(t, 0, s.CartCount())

	s.CartItems = append(s.CartItems,
		CartLineItem{Product: product("a", 10.10), Quantity: 3},
		CartLineItem{Product: product("b", 0.2), Quantity: 1},
	)

	assert.True(t, s.CartTotal().Equal(decimal.RequireFromString("30.50")), s.CartTotal().String())
	assert.Equal(t, 4, s.CartCount())
	assert.Equal(t, 1, s.CartIndex("b"))
	assert.Equal(t, -1, s.CartIndex("zzz"))
}

func TestState_CloneIsDeep(t *testing.T) {
	s := NewState()
	p := product("a", 5)
	p.Images = []string{"one.jpg"}
	s.CartItems = append(s.CartItems, CartLineItem{Product: p, Quantity: 1, SelectedVariants: DefaultVariants()})
	s.WishlistItems = append(s.WishlistItems, WishlistItem{Product: p})

	c := s.Clone()
	c.CartItems[0].Quantity = 9
	c.CartItems[0].SelectedVariants["color"] = "red"
	c.CartItems[0].Images[0] = "two.jpg"
	c.WishlistItems[0].Title = "changed"

	assert.Equal(t, 1, s.CartItems[0].Quantity)
	assert.Equal(t, "default", s.CartItems[0].SelectedVariants["color"])
	assert.Equal(t, "one.jpg", s.CartItems[0].Images[0])
	assert.Equal(t, "Product a", s.WishlistItems[0].Title)
}

func TestMarshalState_RoundTrip(t *testing.T) {
	s := NewState()
	s.CartItems = append(s.CartItems,
		CartLineItem{Product: product("a", 12.5), Quantity: 2, SelectedVariants: Variants{"color": "blue"}},
		CartLineItem{Product: product("b", 3), Quantity: 1, SelectedVariants: DefaultVariants()},
	)
	s.WishlistItems = append(s.WishlistItems, WishlistItem{Product: product("c", 7)})

	data, err := MarshalState(s)
	require.NoError(t, err)

	got, err := UnmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestMarshalState_Layout(t *testing.T) {
	s := NewState()
	s.CartItems = append(s.CartItems, CartLineItem{Product: product("a", 1), Quantity: 1, SelectedVariants: DefaultVariants()})

	data, err := MarshalState(s)
	require.NoError(t, err)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "cartItems")
	require.Contains(t, raw, "wishlistItems")
	line := raw["cartItems"][0]
	assert.Equal(t, "a", line["product_id"])
	assert.Equal(t, float64(1), line["quantity"])
	assert.Equal(t, map[string]any{"color": "default", "size": "standard"}, line["selectedVariants"])
}

func TestUnmarshalState_Sanitizes(t *testing.T) {
	data := []byte(`{
		"cartItems": [
			{"product_id": "a", "title": "A", "extracted_price": 1, "quantity": 2},
			{"product_id": "a", "title": "A again", "extracted_price": 1, "quantity": 5},
			{"product_id": "b", "title": "B", "extracted_price": 1, "quantity": 0},
			{"product_id": "", "title": "nameless", "extracted_price": 1, "quantity": 1}
		],
		"wishlistItems": [
			{"product_id": "c", "title": "C"},
			{"product_id": "c", "title": "C again"}
		]
	}`)

	s, err := UnmarshalState(data)
	require.NoError(t, err)
	require.Len(t, s.CartItems, 1)
	assert.Equal(t, 2, s.CartItems[0].Quantity)
	require.Len(t, s.WishlistItems, 1)
	assert.Equal(t, "C", s.WishlistItems[0].Title)
}

func TestUnmarshalState_MissingCollections(t *testing.T) {
	s, err := UnmarshalState([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, s.CartItems)
	assert.NotNil(t, s.WishlistItems)
}

func TestUnmarshalState_Corrupt(t *testing.T) {
	_, err := UnmarshalState([]byte(`{"cartItems": [`))
	assert.Error(t, err)
}

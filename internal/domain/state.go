package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// State is the persisted record: the cart and the wishlist, in insertion
// order. The JSON field names are the storage layout and must not change.
type State struct {
	CartItems     []CartLineItem `json:"cartItems"`
	WishlistItems []WishlistItem `json:"wishlistItems"`
}

// NewState returns an empty state with non-nil collections.
func NewState() *State {
	return &State{
		CartItems:     []CartLineItem{},
		WishlistItems: []WishlistItem{},
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	out := &State{
		CartItems:     make([]CartLineItem, len(s.CartItems)),
		WishlistItems: make([]WishlistItem, len(s.WishlistItems)),
	}
	for i, item := range s.CartItems {
		out.CartItems[i] = item.Clone()
	}
	for i, item := range s.WishlistItems {
		out.WishlistItems[i] = item.Clone()
	}
	return out
}

// CartIndex returns the position of productID in the cart, or -1.
func (s *State) CartIndex(productID string) int {
	for i := range s.CartItems {
		if s.CartItems[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// WishlistIndex returns the position of productID in the wishlist, or -1.
func (s *State) WishlistIndex(productID string) int {
	for i := range s.WishlistItems {
		if s.WishlistItems[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// CartTotal is the sum of price times quantity over the cart.
func (s *State) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.CartItems {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartCount is the number of units in the cart, not the number of lines.
func (s *State) CartCount() int {
	count := 0
	for _, item := range s.CartItems {
		count += item.Quantity
	}
	return count
}

// MarshalState encodes s in the storage layout.
func MarshalState(s *State) ([]byte, error) {
	if s == nil {
		s = NewState()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a stored record. Records written by older clients
// may break the cart invariants, so lines without an id or with quantity
// below one are dropped and duplicate ids keep their first occurrence.
func UnmarshalState(data []byte) (*State, error) {
	var raw State
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}

	s := NewState()
	seen := make(map[string]struct{}, len(raw.CartItems))
	for _, item := range raw.CartItems {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		s.CartItems = append(s.CartItems, item)
	}

	clear(seen)
	for _, item := range raw.WishlistItems {
		if item.ProductID == "" {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		s.WishlistItems = append(s.WishlistItems, item)
	}

	return s, nil
}

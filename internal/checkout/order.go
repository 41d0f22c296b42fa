// Package checkout turns a cart (or a single "buy now" product) into an
// order submission.
package checkout

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knightempire/e-commerce-frontend/internal/domain"
	"github.com/knightempire/e-commerce-frontend/internal/pricing"
)

// PaymentMethod is how the shopper pays.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentApple  PaymentMethod = "apple"
)

// Contact is the buyer's contact block.
type Contact struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	Newsletter bool   `json:"newsletter"`
}

// ShippingAddress is where the order ships.
type ShippingAddress struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

// Payment carries card details only when Method is card.
type Payment struct {
	Method     PaymentMethod `json:"method" validate:"required,oneof=card paypal apple"`
	CardNumber string        `json:"card_number,omitempty" validate:"required_if=Method card"`
	ExpiryDate string        `json:"expiry_date,omitempty"`
	CVV        string        `json:"cvv,omitempty"`
	SaveInfo   bool          `json:"save_info,omitempty"`
}

// OrderRequest selects what is bought. A cart order takes every cart line;
// otherwise Product is bought Quantity times with SelectedVariants.
type OrderRequest struct {
	IsCartOrder      bool            `json:"is_cart_order"`
	Product          *domain.Product `json:"product,omitempty" validate:"required_if=IsCartOrder false"`
	Quantity         int             `json:"quantity,omitempty" validate:"gte=0,lte=100"`
	SelectedVariants domain.Variants `json:"selected_variants,omitempty"`
	PromoCode        string          `json:"promo_code,omitempty"`
	GiftWrap         bool            `json:"gift_wrap"`
	ExpressShipping  bool            `json:"express_shipping"`
}

// Request is the checkout form as posted by the client.
type Request struct {
	Contact         Contact         `json:"contact"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Payment         Payment         `json:"payment"`
	Order           OrderRequest    `json:"order"`
}

// Items returns the lines being bought: the cart for a cart order, or the
// single product otherwise.
func (r *Request) Items(cart []domain.CartLineItem) []domain.CartLineItem {
	if r.Order.IsCartOrder {
		return cart
	}

	qty := r.Order.Quantity
	if qty < 1 {
		qty = 1
	}
	variants := r.Order.SelectedVariants
	if len(variants) == 0 {
		variants = domain.DefaultVariants()
	}
	return []domain.CartLineItem{{
		Product:          r.Order.Product.Clone(),
		Quantity:         qty,
		SelectedVariants: variants,
	}}
}

// OrderPayload is the order block sent to the order API. Amounts are sent
// at full precision as JSON numbers.
type OrderPayload struct {
	IsCartOrder bool                  `json:"isCartOrder"`
	Items       []domain.CartLineItem `json:"items"`
	PromoCode   string                `json:"promoCode"`
	Subtotal    json.Number           `json:"subtotal"`
	Discount    json.Number           `json:"discount"`
	GiftWrapFee json.Number           `json:"giftWrapFee"`
	Shipping    json.Number           `json:"shipping"`
	Tax         json.Number           `json:"tax"`
	Total       json.Number           `json:"total"`
}

// Payload is the body of an order submission.
type Payload struct {
	Contact         Contact         `json:"contact"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Payment         Payment         `json:"payment"`
	Order           OrderPayload    `json:"order"`
}

// BuildPayload assembles the submission for items priced as breakdown.
// Card fields are dropped for other payment methods.
func BuildPayload(req *Request, items []domain.CartLineItem, breakdown pricing.Breakdown) *Payload {
	payment := req.Payment
	if payment.Method != PaymentCard {
		payment = Payment{Method: payment.Method}
	}

	return &Payload{
		Contact:         req.Contact,
		ShippingAddress: req.ShippingAddress,
		Payment:         payment,
		Order: OrderPayload{
			IsCartOrder: req.Order.IsCartOrder,
			Items:       items,
			PromoCode:   req.Order.PromoCode,
			Subtotal:    number(breakdown.Subtotal),
			Discount:    number(breakdown.Discount),
			GiftWrapFee: number(breakdown.GiftWrapFee),
			Shipping:    number(breakdown.ShippingFee),
			Tax:         number(breakdown.Tax),
			Total:       number(breakdown.Total),
		},
	}
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// CustomerInfo is the contact and address flattened for the confirmation page.
type CustomerInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// Confirmation is what the shopper sees after a successful checkout.
type Confirmation struct {
	OrderNumber   string                `json:"order_number"`
	OrderDate     time.Time             `json:"order_date"`
	PaymentMethod PaymentMethod         `json:"payment_method"`
	PromoApplied  bool                  `json:"promo_applied"`
	IsCartOrder   bool                  `json:"is_cart_order"`
	Items         []domain.CartLineItem `json:"items"`
	Pricing       pricing.Breakdown     `json:"pricing"`
	Display       pricing.Display       `json:"display"`
	CustomerInfo  CustomerInfo          `json:"customer_info"`
}

// NewConfirmation builds the confirmation for an accepted order.
func NewConfirmation(orderNumber string, at time.Time, p *Payload, breakdown pricing.Breakdown) *Confirmation {
	return &Confirmation{
		OrderNumber:   orderNumber,
		OrderDate:     at.UTC(),
		PaymentMethod: p.Payment.Method,
		PromoApplied:  p.Order.PromoCode != "",
		IsCartOrder:   p.Order.IsCartOrder,
		Items:         p.Order.Items,
		Pricing:       breakdown,
		Display:       breakdown.Display(),
		CustomerInfo: CustomerInfo{
			FullName: p.Contact.FullName,
			Email:    p.Contact.Email,
			Phone:    p.Contact.Phone,
			Address:  p.ShippingAddress.Address,
			City:     p.ShippingAddress.City,
			State:    p.ShippingAddress.State,
			ZipCode:  p.ShippingAddress.ZipCode,
		},
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AddCartItemRequest struct {
	ProductID      uuid.UUID  `json:"product_id" validate:"required"`
	ProductColorID *uuid.UUID `json:"product_color_id,omitempty"`
	Quantity       int        `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type AddressRequest struct {
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"required,max=120"`
	State      string `json:"state" validate:"omitempty,max=120"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,len=2"`
}

type CheckoutRequest struct {
	BuyerName       string          `json:"buyer_name" validate:"omitempty,max=160"`
	ShippingAddress AddressRequest  `json:"shipping_address" validate:"required"`
	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
	PaymentMethod   string          `json:"payment_method" validate:"omitempty,max=60"`
}

// Response DTOs

type CartItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductColorID *uuid.UUID      `json:"product_color_id,omitempty"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Thumbnail      string          `json:"thumbnail,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

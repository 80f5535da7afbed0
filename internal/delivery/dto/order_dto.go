package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid processing shipped completed cancelled refunded"`
}

// Response DTOs

type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductColorID *uuid.UUID      `json:"product_color_id,omitempty"`
	ProductName    string          `json:"product_name"`
	ColorName      string          `json:"color_name,omitempty"`
	SKU            string          `json:"sku"`
	ProductPrice   decimal.Decimal `json:"product_price"`
	Quantity       int             `json:"quantity"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	BuyerEmail      string              `json:"buyer_email"`
	BuyerName       string              `json:"buyer_name"`
	ShippingAddress json.RawMessage     `json:"shipping_address"`
	BillingAddress  json.RawMessage     `json:"billing_address,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountTotal   decimal.Decimal     `json:"discount_total"`
	ShippingTotal   decimal.Decimal     `json:"shipping_total"`
	TaxTotal        decimal.Decimal     `json:"tax_total"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	Currency        string              `json:"currency"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	PlacedAt        *time.Time          `json:"placed_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

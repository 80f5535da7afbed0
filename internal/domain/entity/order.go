package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order holds buyer and address snapshots taken at placement time;
// they never change when the catalog does.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	BuyerEmail      string          `gorm:"type:varchar(255);not null" json:"buyer_email"`
	BuyerName       string          `gorm:"type:varchar(160);not null" json:"buyer_name"`
	ShippingAddress datatypes.JSON  `gorm:"type:jsonb;not null" json:"shipping_address"`
	BillingAddress  datatypes.JSON  `gorm:"type:jsonb" json:"billing_address,omitempty"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_total"`
	ShippingTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"shipping_total"`
	TaxTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_total"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	Currency        string          `gorm:"type:char(3);not null;default:'MXN'" json:"currency"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod   string          `gorm:"type:varchar(60)" json:"payment_method"`
	PlacedAt        *time.Time      `json:"placed_at,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the product and color snapshot for one line.
// ProductColorID is nulled if the variant is later deleted; the
// snapshot columns keep the line readable.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductColorID *uuid.UUID      `gorm:"type:uuid" json:"product_color_id,omitempty"`
	ProductName    string          `gorm:"type:varchar(160);not null" json:"product_name"`
	ColorName      string          `gorm:"type:varchar(50)" json:"color_name"`
	SKU            string          `gorm:"type:varchar(64)" json:"sku"`
	ProductPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"product_price"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Product *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Color   *ProductColor `gorm:"foreignKey:ProductColorID" json:"color,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

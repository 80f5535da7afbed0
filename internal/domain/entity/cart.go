package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem snapshots sku, name and unit price at the time the line was
// added; the snapshot is carried onto the order at checkout.
type CartItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CartID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_product,unique" json:"cart_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_product,unique" json:"product_id"`
	ProductColorID *uuid.UUID      `gorm:"type:uuid;index:idx_cart_product,unique" json:"product_color_id,omitempty"`
	SKU            string          `gorm:"type:varchar(64)" json:"sku"`
	Name           string          `gorm:"type:varchar(160)" json:"name"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Product *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Color   *ProductColor `gorm:"foreignKey:ProductColorID" json:"color,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

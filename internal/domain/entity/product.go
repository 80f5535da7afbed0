package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog root. Stock is derived from the color variants
// whenever the product has at least one; otherwise it is set directly.
type Product struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SKU          string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Name         string           `gorm:"type:varchar(160);not null" json:"name"`
	Slug         string           `gorm:"type:varchar(180);uniqueIndex;not null" json:"slug"`
	Descriptions string           `gorm:"type:text" json:"descriptions"`
	Price        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency     string           `gorm:"type:char(3);not null;default:'MXN'" json:"currency"`
	Weight       *decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight,omitempty"`
	Thumbnail    *string          `gorm:"type:varchar(2048)" json:"thumbnail,omitempty"`
	Image        AssetList        `gorm:"type:jsonb" json:"image,omitempty"`
	Stock        int              `gorm:"not null;default:0" json:"stock"`
	Category     string           `gorm:"type:varchar(120);not null;index" json:"category"`
	Subcategory  string           `gorm:"type:varchar(100)" json:"subcategory"`
	Size         string           `gorm:"type:varchar(50);not null" json:"size"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Colors []ProductColor `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"colors,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// HasVariants reports whether stock is variant-derived for this product.
func (p *Product) HasVariants() bool {
	return len(p.Colors) > 0
}

// DefaultColor returns the variant flagged as default, falling back to
// the first variant when none is flagged.
func (p *Product) DefaultColor() *ProductColor {
	for i := range p.Colors {
		if p.Colors[i].IsDefault {
			return &p.Colors[i]
		}
	}
	if len(p.Colors) > 0 {
		return &p.Colors[0]
	}
	return nil
}

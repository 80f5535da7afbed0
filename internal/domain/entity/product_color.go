package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductColor is a color variant: a per-color stock and asset bucket
// under a product. At most one variant per product is the default.
type ProductColor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Code      *string   `gorm:"type:varchar(7)" json:"code,omitempty"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	IsDefault bool      `gorm:"not null;default:false;index" json:"is_default"`
	Image     *string   `gorm:"type:varchar(2048)" json:"image,omitempty"`
	Gallery   AssetList `gorm:"type:jsonb" json:"gallery,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (ProductColor) TableName() string {
	return "product_colors"
}

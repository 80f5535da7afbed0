package repository

import (
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductColorRepository interface {
	Create(db *gorm.DB, color *entity.ProductColor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProductColor, error)
	FindByIDAndProduct(db *gorm.DB, id, productID uuid.UUID) (*entity.ProductColor, error)
	FindByProduct(db *gorm.DB, productID uuid.UUID) ([]entity.ProductColor, error)
	Update(db *gorm.DB, color *entity.ProductColor) error
	Delete(db *gorm.DB, id uuid.UUID) error
	CountByProduct(db *gorm.DB, productID uuid.UUID) (int64, error)
	SumStockByProduct(db *gorm.DB, productID uuid.UUID) (int, error)
	// FindFirstOther returns any variant of the product other than
	// excludeID, used to promote a new default.
	FindFirstOther(db *gorm.DB, productID, excludeID uuid.UUID) (*entity.ProductColor, error)
	// ClearDefaults unsets is_default on every variant of the product
	// except keepID.
	ClearDefaults(db *gorm.DB, productID, keepID uuid.UUID) error
}

package repository

import (
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(db *gorm.DB, product *entity.Product) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Product, error)
	// FindByIDLocked loads the product row under FOR UPDATE so variant
	// writes and stock recomputation serialize per product.
	FindByIDLocked(db *gorm.DB, id uuid.UUID) (*entity.Product, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.Product, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Product, int64, error)
	FindInStock(db *gorm.DB) ([]entity.Product, error)
	// Search lists in-stock products filtered by category, size and a
	// free-text match on name. Empty filters are skipped.
	Search(db *gorm.DB, category, size, query string, limit, offset int) ([]entity.Product, int64, error)
	FindRelated(db *gorm.DB, category string, excludeID uuid.UUID, limit int) ([]entity.Product, error)
	Update(db *gorm.DB, product *entity.Product) error
	UpdateStock(db *gorm.DB, id uuid.UUID, stock int) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	ExistsSKU(db *gorm.DB, sku string) (bool, error)
	ExistsSlug(db *gorm.DB, slug string) (bool, error)
	FindSKUsLike(db *gorm.DB, prefix string) ([]string, error)
	DistinctCategories(db *gorm.DB) ([]string, error)
	DistinctSizes(db *gorm.DB) ([]string, error)
}

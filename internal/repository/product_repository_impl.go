package repository

import (
	"errors"

	"tienda/internal/domain/entity"
	domainRepo "tienda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct{}

func NewProductRepository() domainRepo.ProductRepository {
	return &productRepository{}
}

func (r *productRepository) Create(db *gorm.DB, product *entity.Product) error {
	return db.Omit("Colors").Create(product).Error
}

func (r *productRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := db.Preload("Colors").Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDLocked(db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Product, error) {
	var product entity.Product
	err := db.Preload("Colors").Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	if err := db.Model(&entity.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Colors").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) FindInStock(db *gorm.DB) ([]entity.Product, error) {
	var products []entity.Product
	err := db.Preload("Colors").
		Where("stock > 0").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Search(db *gorm.DB, category, size, query string, limit, offset int) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	scope := db.Model(&entity.Product{}).Where("stock > 0")
	if category != "" {
		scope = scope.Where("category = ?", category)
	}
	if size != "" {
		scope = scope.Where("size = ?", size)
	}
	if query != "" {
		scope = scope.Where("name ILIKE ?", "%"+query+"%")
	}

	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope.Preload("Colors").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) FindRelated(db *gorm.DB, category string, excludeID uuid.UUID, limit int) ([]entity.Product, error) {
	var products []entity.Product
	err := db.Preload("Colors").
		Where("category = ? AND id <> ? AND stock > 0", category, excludeID).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(db *gorm.DB, product *entity.Product) error {
	return db.Omit("Colors").Save(product).Error
}

func (r *productRepository) UpdateStock(db *gorm.DB, id uuid.UUID, stock int) error {
	return db.Model(&entity.Product{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *productRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Product{})
	return result.RowsAffected, result.Error
}

func (r *productRepository) ExistsSKU(db *gorm.DB, sku string) (bool, error) {
	var count int64
	err := db.Model(&entity.Product{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

func (r *productRepository) ExistsSlug(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&entity.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *productRepository) FindSKUsLike(db *gorm.DB, prefix string) ([]string, error) {
	var skus []string
	err := db.Model(&entity.Product{}).
		Where("sku LIKE ?", prefix+"%").
		Pluck("sku", &skus).Error
	if err != nil {
		return nil, err
	}
	return skus, nil
}

func (r *productRepository) DistinctCategories(db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.Model(&entity.Product{}).
		Where("stock > 0").
		Distinct().
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *productRepository) DistinctSizes(db *gorm.DB) ([]string, error) {
	var sizes []string
	err := db.Model(&entity.Product{}).
		Where("stock > 0").
		Distinct().
		Pluck("size", &sizes).Error
	if err != nil {
		return nil, err
	}
	return sizes, nil
}

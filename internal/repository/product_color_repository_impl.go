package repository

import (
	"errors"

	"tienda/internal/domain/entity"
	domainRepo "tienda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productColorRepository struct{}

func NewProductColorRepository() domainRepo.ProductColorRepository {
	return &productColorRepository{}
}

func (r *productColorRepository) Create(db *gorm.DB, color *entity.ProductColor) error {
	return db.Create(color).Error
}

func (r *productColorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProductColor, error) {
	var color entity.ProductColor
	err := db.Where("id = ?", id).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

func (r *productColorRepository) FindByIDAndProduct(db *gorm.DB, id, productID uuid.UUID) (*entity.ProductColor, error) {
	var color entity.ProductColor
	err := db.Where("id = ? AND product_id = ?", id, productID).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

func (r *productColorRepository) FindByProduct(db *gorm.DB, productID uuid.UUID) ([]entity.ProductColor, error) {
	var colors []entity.ProductColor
	err := db.Where("product_id = ?", productID).Order("created_at ASC").Find(&colors).Error
	if err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *productColorRepository) Update(db *gorm.DB, color *entity.ProductColor) error {
	return db.Save(color).Error
}

func (r *productColorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.ProductColor{}).Error
}

func (r *productColorRepository) CountByProduct(db *gorm.DB, productID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.ProductColor{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *productColorRepository) SumStockByProduct(db *gorm.DB, productID uuid.UUID) (int, error) {
	var sum int
	err := db.Model(&entity.ProductColor{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *productColorRepository) FindFirstOther(db *gorm.DB, productID, excludeID uuid.UUID) (*entity.ProductColor, error) {
	var color entity.ProductColor
	err := db.Where("product_id = ? AND id <> ?", productID, excludeID).
		Order("created_at ASC").
		First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

func (r *productColorRepository) ClearDefaults(db *gorm.DB, productID, keepID uuid.UUID) error {
	return db.Model(&entity.ProductColor{}).
		Where("product_id = ? AND id <> ? AND is_default", productID, keepID).
		Update("is_default", false).Error
}

package repository

import (
	"errors"

	"tienda/internal/domain/entity"
	domainRepo "tienda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartRepository struct{}

func NewCartRepository() domainRepo.CartRepository {
	return &cartRepository{}
}

func (r *cartRepository) Create(db *gorm.DB, cart *entity.Cart) error {
	return db.Create(cart).Error
}

func (r *cartRepository) FindByUser(db *gorm.DB, userID uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := db.Preload("Items").Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) CreateItem(db *gorm.DB, item *entity.CartItem) error {
	return db.Create(item).Error
}

func (r *cartRepository) FindItem(db *gorm.DB, cartID, productID uuid.UUID, colorID *uuid.UUID) (*entity.CartItem, error) {
	query := db.Where("cart_id = ? AND product_id = ?", cartID, productID)
	if colorID != nil {
		query = query.Where("product_color_id = ?", *colorID)
	} else {
		query = query.Where("product_color_id IS NULL")
	}

	var item entity.CartItem
	err := query.First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) FindItemByID(db *gorm.DB, id uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	err := db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItem(db *gorm.DB, item *entity.CartItem) error {
	return db.Save(item).Error
}

func (r *cartRepository) DeleteItem(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.CartItem{}).Error
}

func (r *cartRepository) DeleteItems(db *gorm.DB, cartID uuid.UUID) error {
	return db.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

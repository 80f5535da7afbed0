package repository

import (
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(db *gorm.DB, cart *entity.Cart) error
	FindByUser(db *gorm.DB, userID uuid.UUID) (*entity.Cart, error)
	CreateItem(db *gorm.DB, item *entity.CartItem) error
	FindItem(db *gorm.DB, cartID, productID uuid.UUID, colorID *uuid.UUID) (*entity.CartItem, error)
	FindItemByID(db *gorm.DB, id uuid.UUID) (*entity.CartItem, error)
	UpdateItem(db *gorm.DB, item *entity.CartItem) error
	DeleteItem(db *gorm.DB, id uuid.UUID) error
	DeleteItems(db *gorm.DB, cartID uuid.UUID) error
}

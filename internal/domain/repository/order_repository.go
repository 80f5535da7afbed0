package repository

import (
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(db *gorm.DB, order *entity.Order) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Order, int64, error)
	FindByUser(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]entity.Order, int64, error)
	Update(db *gorm.DB, order *entity.Order) error
}

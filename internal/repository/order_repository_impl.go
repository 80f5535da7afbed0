package repository

import (
	"errors"

	"tienda/internal/domain/entity"
	domainRepo "tienda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(db *gorm.DB, order *entity.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := db.Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	if err := db.Model(&entity.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Items").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) FindByUser(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	if err := db.Model(&entity.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Items").
		Where("user_id = ?", userID).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) Update(db *gorm.DB, order *entity.Order) error {
	return db.Save(order).Error
}

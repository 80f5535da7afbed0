package service

import (
	"errors"

	"tienda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrStockProductNotFound = errors.New("product not found for stock recompute")

// StockService keeps products.stock equal to the sum of the variants'
// stock. Recompute must run inside the same transaction as the variant
// write that triggered it, after that write is applied; the product row
// lock serializes concurrent writers on the same product.
type StockService interface {
	Recompute(tx *gorm.DB, productID uuid.UUID) error
}

type stockService struct {
	log         *logrus.Logger
	productRepo repository.ProductRepository
	colorRepo   repository.ProductColorRepository
}

func NewStockService(log *logrus.Logger, productRepo repository.ProductRepository, colorRepo repository.ProductColorRepository) StockService {
	return &stockService{
		log:         log,
		productRepo: productRepo,
		colorRepo:   colorRepo,
	}
}

func (s *stockService) Recompute(tx *gorm.DB, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDLocked(tx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrStockProductNotFound
	}

	sum, err := s.colorRepo.SumStockByProduct(tx, productID)
	if err != nil {
		return err
	}

	return s.productRepo.UpdateStock(tx, productID, sum)
}

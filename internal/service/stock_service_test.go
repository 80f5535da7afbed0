package service_test

import (
	"testing"

	"tienda/internal/domain/entity"
	"tienda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecompute_WritesVariantSum(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockColorRepo := new(MockProductColorRepository)
	productID := uuid.New()

	mockProductRepo.On("FindByIDLocked", mock.Anything, productID).
		Return(&entity.Product{ID: productID, Stock: 1}, nil)
	mockColorRepo.On("SumStockByProduct", mock.Anything, productID).Return(7, nil)
	mockProductRepo.On("UpdateStock", mock.Anything, productID, 7).Return(nil)

	svc := service.NewStockService(logrus.New(), mockProductRepo, mockColorRepo)

	err := svc.Recompute(nil, productID)

	assert.NoError(t, err)
	mockProductRepo.AssertExpectations(t)
	mockColorRepo.AssertExpectations(t)
}

func TestRecompute_ZeroWhenNoVariants(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockColorRepo := new(MockProductColorRepository)
	productID := uuid.New()

	mockProductRepo.On("FindByIDLocked", mock.Anything, productID).
		Return(&entity.Product{ID: productID, Stock: 12}, nil)
	mockColorRepo.On("SumStockByProduct", mock.Anything, productID).Return(0, nil)
	mockProductRepo.On("UpdateStock", mock.Anything, productID, 0).Return(nil)

	svc := service.NewStockService(logrus.New(), mockProductRepo, mockColorRepo)

	err := svc.Recompute(nil, productID)

	assert.NoError(t, err)
	mockProductRepo.AssertExpectations(t)
}

func TestRecompute_ProductMissing(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockColorRepo := new(MockProductColorRepository)
	productID := uuid.New()

	mockProductRepo.On("FindByIDLocked", mock.Anything, productID).Return(nil, nil)

	svc := service.NewStockService(logrus.New(), mockProductRepo, mockColorRepo)

	err := svc.Recompute(nil, productID)

	assert.ErrorIs(t, err, service.ErrStockProductNotFound)
	mockColorRepo.AssertNotCalled(t, "SumStockByProduct", mock.Anything, mock.Anything)
}

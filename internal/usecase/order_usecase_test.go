package usecase

import (
	"testing"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderFixture() (*orderUsecase, *MockProductRepository, *MockProductColorRepository, *MockStockService) {
	productRepo := new(MockProductRepository)
	colorRepo := new(MockProductColorRepository)
	stock := new(MockStockService)
	u := &orderUsecase{
		log:         logrus.New(),
		productRepo: productRepo,
		colorRepo:   colorRepo,
		stock:       stock,
	}
	return u, productRepo, colorRepo, stock
}

func TestReserveLineStock_RejectsVariantlessLineWhenVariantsExist(t *testing.T) {
	u, productRepo, colorRepo, _ := newOrderFixture()
	product := &entity.Product{ID: uuid.New(), Stock: 10}

	colorRepo.On("CountByProduct", mock.Anything, product.ID).Return(int64(2), nil)

	_, err := u.reserveLineStock(nil, product, nil, 3)

	assert.ErrorIs(t, err, ErrColorRequired)
	productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserveLineStock_DecrementsDirectStock(t *testing.T) {
	u, productRepo, colorRepo, _ := newOrderFixture()
	product := &entity.Product{ID: uuid.New(), Stock: 10}

	colorRepo.On("CountByProduct", mock.Anything, product.ID).Return(int64(0), nil)
	productRepo.On("UpdateStock", mock.Anything, product.ID, 7).Return(nil)

	colorName, err := u.reserveLineStock(nil, product, nil, 3)

	assert.NoError(t, err)
	assert.Empty(t, colorName)
	productRepo.AssertExpectations(t)
}

func TestReserveLineStock_InsufficientDirectStock(t *testing.T) {
	u, productRepo, colorRepo, _ := newOrderFixture()
	product := &entity.Product{ID: uuid.New(), Stock: 2}

	colorRepo.On("CountByProduct", mock.Anything, product.ID).Return(int64(0), nil)

	_, err := u.reserveLineStock(nil, product, nil, 3)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReserveLineStock_VariantLineDecrementsColorAndRecomputes(t *testing.T) {
	u, _, colorRepo, stock := newOrderFixture()
	product := &entity.Product{ID: uuid.New(), Stock: 5}
	colorID := uuid.New()

	colorRepo.On("FindByID", mock.Anything, colorID).
		Return(&entity.ProductColor{ID: colorID, ProductID: product.ID, Name: "Rojo", Stock: 5}, nil)
	colorRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.ProductColor) bool {
		return c.ID == colorID && c.Stock == 2
	})).Return(nil)
	stock.On("Recompute", mock.Anything, product.ID).Return(nil)

	colorName, err := u.reserveLineStock(nil, product, &colorID, 3)

	assert.NoError(t, err)
	assert.Equal(t, "Rojo", colorName)
	colorRepo.AssertExpectations(t)
	stock.AssertExpectations(t)
}

func TestReserveLineStock_DeletedVariantUnavailable(t *testing.T) {
	u, _, colorRepo, _ := newOrderFixture()
	product := &entity.Product{ID: uuid.New()}
	colorID := uuid.New()

	colorRepo.On("FindByID", mock.Anything, colorID).Return(nil, nil)

	_, err := u.reserveLineStock(nil, product, &colorID, 1)

	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestRestockLine_SkipsVariantlessLineWhenVariantsExist(t *testing.T) {
	u, productRepo, colorRepo, _ := newOrderFixture()
	productID := uuid.New()

	productRepo.On("FindByIDLocked", mock.Anything, productID).
		Return(&entity.Product{ID: productID, Stock: 4}, nil)
	colorRepo.On("CountByProduct", mock.Anything, productID).Return(int64(1), nil)

	err := u.restockLine(nil, &entity.OrderItem{ProductID: productID, Quantity: 2})

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestRestockLine_RestoresDirectStock(t *testing.T) {
	u, productRepo, colorRepo, _ := newOrderFixture()
	productID := uuid.New()

	productRepo.On("FindByIDLocked", mock.Anything, productID).
		Return(&entity.Product{ID: productID, Stock: 4}, nil)
	colorRepo.On("CountByProduct", mock.Anything, productID).Return(int64(0), nil)
	productRepo.On("UpdateStock", mock.Anything, productID, 6).Return(nil)

	err := u.restockLine(nil, &entity.OrderItem{ProductID: productID, Quantity: 2})

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestRestockLine_SkipsDeletedProduct(t *testing.T) {
	u, productRepo, _, _ := newOrderFixture()
	productID := uuid.New()

	productRepo.On("FindByIDLocked", mock.Anything, productID).Return(nil, nil)

	err := u.restockLine(nil, &entity.OrderItem{ProductID: productID, Quantity: 2})

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestRestockLine_RestoresVariantStock(t *testing.T) {
	u, productRepo, colorRepo, stock := newOrderFixture()
	productID := uuid.New()
	colorID := uuid.New()

	productRepo.On("FindByIDLocked", mock.Anything, productID).
		Return(&entity.Product{ID: productID}, nil)
	colorRepo.On("FindByID", mock.Anything, colorID).
		Return(&entity.ProductColor{ID: colorID, ProductID: productID, Stock: 1}, nil)
	colorRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.ProductColor) bool {
		return c.ID == colorID && c.Stock == 3
	})).Return(nil)
	stock.On("Recompute", mock.Anything, productID).Return(nil)

	err := u.restockLine(nil, &entity.OrderItem{ProductID: productID, ProductColorID: &colorID, Quantity: 2})

	assert.NoError(t, err)
	colorRepo.AssertExpectations(t)
	stock.AssertExpectations(t)
}

package usecase

import (
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockProductRepository is a mock implementation of the ProductRepository interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(db *gorm.DB, product *entity.Product) error {
	args := m.Called(db, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDLocked(db *gorm.DB, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Product, error) {
	args := m.Called(db, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Product, int64, error) {
	args := m.Called(db, limit, offset)
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindInStock(db *gorm.DB) ([]entity.Product, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Search(db *gorm.DB, category, size, query string, limit, offset int) ([]entity.Product, int64, error) {
	args := m.Called(db, category, size, query, limit, offset)
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindRelated(db *gorm.DB, category string, excludeID uuid.UUID, limit int) ([]entity.Product, error) {
	args := m.Called(db, category, excludeID, limit)
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(db *gorm.DB, product *entity.Product) error {
	args := m.Called(db, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(db *gorm.DB, id uuid.UUID, stock int) error {
	args := m.Called(db, id, stock)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsSKU(db *gorm.DB, sku string) (bool, error) {
	args := m.Called(db, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsSlug(db *gorm.DB, slug string) (bool, error) {
	args := m.Called(db, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindSKUsLike(db *gorm.DB, prefix string) ([]string, error) {
	args := m.Called(db, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) DistinctCategories(db *gorm.DB) ([]string, error) {
	args := m.Called(db)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) DistinctSizes(db *gorm.DB) ([]string, error) {
	args := m.Called(db)
	return args.Get(0).([]string), args.Error(1)
}

// MockProductColorRepository is a mock implementation of the ProductColorRepository interface
type MockProductColorRepository struct {
	mock.Mock
}

func (m *MockProductColorRepository) Create(db *gorm.DB, color *entity.ProductColor) error {
	args := m.Called(db, color)
	return args.Error(0)
}

func (m *MockProductColorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProductColor, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductColor), args.Error(1)
}

func (m *MockProductColorRepository) FindByIDAndProduct(db *gorm.DB, id, productID uuid.UUID) (*entity.ProductColor, error) {
	args := m.Called(db, id, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductColor), args.Error(1)
}

func (m *MockProductColorRepository) FindByProduct(db *gorm.DB, productID uuid.UUID) ([]entity.ProductColor, error) {
	args := m.Called(db, productID)
	return args.Get(0).([]entity.ProductColor), args.Error(1)
}

func (m *MockProductColorRepository) Update(db *gorm.DB, color *entity.ProductColor) error {
	args := m.Called(db, color)
	return args.Error(0)
}

func (m *MockProductColorRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *MockProductColorRepository) CountByProduct(db *gorm.DB, productID uuid.UUID) (int64, error) {
	args := m.Called(db, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductColorRepository) SumStockByProduct(db *gorm.DB, productID uuid.UUID) (int, error) {
	args := m.Called(db, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockProductColorRepository) FindFirstOther(db *gorm.DB, productID, excludeID uuid.UUID) (*entity.ProductColor, error) {
	args := m.Called(db, productID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductColor), args.Error(1)
}

func (m *MockProductColorRepository) ClearDefaults(db *gorm.DB, productID, keepID uuid.UUID) error {
	args := m.Called(db, productID, keepID)
	return args.Error(0)
}

// MockStockService is a mock implementation of the StockService interface
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) Recompute(tx *gorm.DB, productID uuid.UUID) error {
	args := m.Called(tx, productID)
	return args.Error(0)
}

package service_test

import (
	"testing"

	"tienda/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenerate_FirstSKU(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindSKUsLike", mock.Anything, "SKU-").Return([]string{}, nil)

	gen := service.NewSKUGenerator(mockRepo)

	sku, err := gen.Generate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "SKU-00001", sku)
	mockRepo.AssertExpectations(t)
}

func TestGenerate_NextAfterHighestSuffix(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindSKUsLike", mock.Anything, "SKU-").
		Return([]string{"SKU-00009", "SKU-00012", "SKU-00003"}, nil)

	gen := service.NewSKUGenerator(mockRepo)

	sku, err := gen.Generate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "SKU-00013", sku)
}

func TestGenerate_SkipsNonNumericSuffixes(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindSKUsLike", mock.Anything, "SKU-").
		Return([]string{"SKU-PROMO", "SKU-00002", "SKU--5"}, nil)

	gen := service.NewSKUGenerator(mockRepo)

	sku, err := gen.Generate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "SKU-00003", sku)
}

func TestGenerate_PadsBeyondFiveDigits(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindSKUsLike", mock.Anything, "SKU-").
		Return([]string{"SKU-99999"}, nil)

	gen := service.NewSKUGenerator(mockRepo)

	sku, err := gen.Generate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "SKU-100000", sku)
}

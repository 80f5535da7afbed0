package service

import (
	"fmt"
	"strconv"
	"strings"

	"tienda/internal/domain/repository"

	"gorm.io/gorm"
)

// DefaultSKUPrefix is the prefix auto-allocated SKUs are scanned and
// generated under.
const DefaultSKUPrefix = "SKU-"

// SKUGenerator allocates the next sequential SKU: the highest numeric
// suffix under the prefix plus one, zero-padded to five digits.
//
// The read-then-format is inherently racy; callers rely on the unique
// constraint on products.sku and retry on conflict.
type SKUGenerator interface {
	Generate(db *gorm.DB) (string, error)
}

type skuGenerator struct {
	prefix      string
	productRepo repository.ProductRepository
}

func NewSKUGenerator(productRepo repository.ProductRepository) SKUGenerator {
	return &skuGenerator{
		prefix:      DefaultSKUPrefix,
		productRepo: productRepo,
	}
}

func (g *skuGenerator) Generate(db *gorm.DB) (string, error) {
	skus, err := g.productRepo.FindSKUsLike(db, g.prefix)
	if err != nil {
		return "", err
	}

	max := 0
	for _, sku := range skus {
		suffix := strings.TrimPrefix(sku, g.prefix)
		number, err := strconv.Atoi(suffix)
		if err != nil || number <= 0 {
			continue
		}
		if number > max {
			max = number
		}
	}

	return fmt.Sprintf("%s%05d", g.prefix, max+1), nil
}

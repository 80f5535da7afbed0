package usecase

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})

	assert.True(t, isDuplicateKeyError(err, "sku"))
	assert.False(t, isDuplicateKeyError(err, "slug"))
	assert.False(t, isDuplicateKeyError(fmt.Errorf("plain error"), "sku"))
}

func TestIsForeignKeyError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "cart_items_product_id_fkey"})

	assert.True(t, isForeignKeyError(err, "product"))
	assert.False(t, isForeignKeyError(err, "order"))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "cart_items_product_id_fkey"})
	assert.False(t, isForeignKeyError(dup, "product"))
}

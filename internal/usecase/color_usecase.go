package usecase

import (
	"context"
	"errors"

	"tienda/internal/converter"
	"tienda/internal/delivery/dto"
	"tienda/internal/domain/repository"
	"tienda/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrColorNotFound = errors.New("product color not found")

type ColorUsecase interface {
	Delete(ctx context.Context, productID, colorID uuid.UUID) error
	RemoveGalleryImage(ctx context.Context, productID, colorID uuid.UUID, index int) (*dto.ColorResponse, error)
}

type colorUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	productRepo repository.ProductRepository
	colorRepo   repository.ProductColorRepository
	variants    service.VariantService
	assets      service.AssetService
	shopCache   *service.ShopCache
	converter   *converter.ProductConverter
}

func NewColorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	colorRepo repository.ProductColorRepository,
	variants service.VariantService,
	assets service.AssetService,
	shopCache *service.ShopCache,
	productConverter *converter.ProductConverter,
) ColorUsecase {
	return &colorUsecase{
		db:          db,
		log:         log,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		variants:    variants,
		assets:      assets,
		shopCache:   shopCache,
		converter:   productConverter,
	}
}

// Delete removes one variant. The last variant of a product cannot be
// deleted this way; deleting the product itself is the only way out.
func (u *colorUsecase) Delete(ctx context.Context, productID, colorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()

	product, err := u.productRepo.FindByIDLocked(tx, productID)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", productID, err)
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	color, err := u.colorRepo.FindByIDAndProduct(tx, colorID, productID)
	if err != nil {
		u.log.Warnf("Failed to find color %s: %+v", colorID, err)
		return err
	}
	if color == nil {
		return ErrColorNotFound
	}

	if err := u.variants.DeleteColor(tx, batch, color); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	u.log.Infof("Product color deleted: product=%s, color=%s", productID, colorID)
	return nil
}

// RemoveGalleryImage drops one gallery slot of a variant by index.
func (u *colorUsecase) RemoveGalleryImage(ctx context.Context, productID, colorID uuid.UUID, index int) (*dto.ColorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()

	color, err := u.colorRepo.FindByIDAndProduct(tx, colorID, productID)
	if err != nil {
		u.log.Warnf("Failed to find color %s: %+v", colorID, err)
		return nil, err
	}
	if color == nil {
		return nil, ErrColorNotFound
	}

	if _, err := u.variants.RemoveGalleryImage(tx, batch, color, index); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	return u.converter.ColorToResponse(color), nil
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"tienda/internal/converter"
	"tienda/internal/delivery/dto"
	"tienda/internal/domain/repository"
	"tienda/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const relatedProductsLimit = 4

type ShopUsecase interface {
	List(ctx context.Context, req *dto.ShopListRequest) (*dto.ShopListResponse, error)
	Detail(ctx context.Context, slug string) (*dto.ShopDetailResponse, error)
}

type shopUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	productRepo repository.ProductRepository
	cache       *service.ShopCache
	converter   *converter.ProductConverter
}

func NewShopUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	cache *service.ShopCache,
	productConverter *converter.ProductConverter,
) ShopUsecase {
	return &shopUsecase{
		db:          db,
		log:         log,
		productRepo: productRepo,
		cache:       cache,
		converter:   productConverter,
	}
}

// List serves the storefront listing: in-stock products filtered by
// category, size and name, plus the filter facets. Rendered pages are
// cached in Redis and invalidated on every catalog write.
func (u *shopUsecase) List(ctx context.Context, req *dto.ShopListRequest) (*dto.ShopListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	cacheKey := fmt.Sprintf("%s|%s|%s|%d|%d", req.Category, req.Size, req.Search, req.Page, req.PageSize)
	if cached, err := u.cache.Get(ctx, cacheKey); err != nil {
		u.log.Warnf("Failed to read shop cache: %+v", err)
	} else if cached != nil {
		var response dto.ShopListResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}
		u.log.Warnf("Failed to decode cached shop listing, rebuilding")
	}

	db := u.db.WithContext(ctx)

	products, total, err := u.productRepo.Search(db, req.Category, req.Size, req.Search, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		u.log.Warnf("Failed to search products: %+v", err)
		return nil, err
	}

	categories, err := u.productRepo.DistinctCategories(db)
	if err != nil {
		u.log.Warnf("Failed to load categories: %+v", err)
		return nil, err
	}

	sizes, err := u.productRepo.DistinctSizes(db)
	if err != nil {
		u.log.Warnf("Failed to load sizes: %+v", err)
		return nil, err
	}

	response := &dto.ShopListResponse{
		Products: u.converter.ProductsToResponses(products),
		Facets: dto.ShopFacetsResponse{
			Categories: categories,
			Sizes:      sizes,
		},
		Total:    int(total),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if payload, err := json.Marshal(response); err == nil {
		if err := u.cache.Set(ctx, cacheKey, payload); err != nil {
			u.log.Warnf("Failed to write shop cache: %+v", err)
		}
	}

	return response, nil
}

// Detail serves a product page by slug with related products from the
// same category.
func (u *shopUsecase) Detail(ctx context.Context, slug string) (*dto.ShopDetailResponse, error) {
	db := u.db.WithContext(ctx)

	product, err := u.productRepo.FindBySlug(db, slug)
	if err != nil {
		u.log.Warnf("Failed to find product by slug %s: %+v", slug, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	related, err := u.productRepo.FindRelated(db, product.Category, product.ID, relatedProductsLimit)
	if err != nil {
		u.log.Warnf("Failed to load related products: %+v", err)
		return nil, err
	}

	return &dto.ShopDetailResponse{
		Product: *u.converter.ProductToResponse(product),
		Related: u.converter.ProductsToResponses(related),
	}, nil
}

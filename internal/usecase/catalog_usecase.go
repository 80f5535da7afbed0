package usecase

import (
	"context"
	"errors"

	"tienda/internal/converter"
	"tienda/internal/delivery/dto"
	"tienda/internal/domain/entity"
	"tienda/internal/domain/repository"
	"tienda/internal/service"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSKUAlreadyExists  = errors.New("sku already exists")
	ErrSlugAlreadyExists = errors.New("slug already exists")
)

// skuAttempts bounds the regenerate-and-retry loop when an
// auto-allocated SKU loses the race to a concurrent insert.
const skuAttempts = 3

type CatalogUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context, page, pageSize int) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	UpdateInline(ctx context.Context, id uuid.UUID, req *dto.UpdateProductInlineRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RemoveImage(ctx context.Context, id uuid.UUID, index int) (*dto.ProductResponse, error)
	NextSKU(ctx context.Context) (*dto.NextSKUResponse, error)
	CheckSKU(ctx context.Context, sku string) (*dto.ExistsResponse, error)
	CheckSlug(ctx context.Context, slug string) (*dto.ExistsResponse, error)
}

type catalogUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	productRepo repository.ProductRepository
	colorRepo   repository.ProductColorRepository
	variants    service.VariantService
	assets      service.AssetService
	stock       service.StockService
	skuGen      service.SKUGenerator
	shopCache   *service.ShopCache
	converter   *converter.ProductConverter
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	colorRepo repository.ProductColorRepository,
	variants service.VariantService,
	assets service.AssetService,
	stock service.StockService,
	skuGen service.SKUGenerator,
	shopCache *service.ShopCache,
	productConverter *converter.ProductConverter,
) CatalogUsecase {
	return &catalogUsecase{
		db:          db,
		log:         log,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		variants:    variants,
		assets:      assets,
		stock:       stock,
		skuGen:      skuGen,
		shopCache:   shopCache,
		converter:   productConverter,
	}
}

// Create inserts a product with its variants atomically. When no SKU is
// sent one is allocated; losing the allocation race to a concurrent
// insert regenerates and retries.
func (u *catalogUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	autoSKU := req.SKU == ""

	var response *dto.ProductResponse
	var err error
	for attempt := 0; attempt < skuAttempts; attempt++ {
		response, err = u.create(ctx, req)
		if autoSKU && errors.Is(err, ErrSKUAlreadyExists) {
			u.log.Warnf("Auto-allocated SKU collided, retrying (attempt %d)", attempt+1)
			continue
		}
		break
	}
	return response, err
}

func (u *catalogUsecase) create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()
	committed := false
	defer func() {
		if !committed {
			batch.Discard()
		}
	}()

	skuValue := req.SKU
	if skuValue == "" {
		generated, err := u.skuGen.Generate(tx)
		if err != nil {
			u.log.Warnf("Failed to allocate SKU: %+v", err)
			return nil, err
		}
		skuValue = generated
	}

	slugValue := req.Slug
	if slugValue == "" {
		slugValue = slug.Make(req.Name)
	}

	currency := req.Currency
	if currency == "" {
		currency = "MXN"
	}

	product := &entity.Product{
		SKU:          skuValue,
		Name:         req.Name,
		Slug:         slugValue,
		Descriptions: req.Descriptions,
		Price:        req.Price,
		Currency:     currency,
		Weight:       req.Weight,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Size:         req.Size,
	}

	// Direct stock only applies to variantless products.
	if len(req.Colors) == 0 && req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Thumbnail != nil {
		stored, err := batch.Store(toUpload(req.Thumbnail), service.PrefixProductThumbnails)
		if err != nil {
			return nil, err
		}
		product.Thumbnail = &stored
	}

	if len(req.Images) > 0 {
		images := entity.AssetList{}
		for _, upload := range req.Images {
			stored, err := batch.Store(toUpload(upload), service.PrefixProductImages)
			if err != nil {
				return nil, err
			}
			images = append(images, stored)
		}
		product.Image = images
	}

	if err := u.productRepo.Create(tx, product); err != nil {
		if mapped := mapProductConflict(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, err
	}

	if len(req.Colors) > 0 {
		inputs := toColorInputs(req.Colors)
		if err := u.variants.Reconcile(tx, batch, product.ID, inputs, service.ReconcileOptions{Mode: service.ModeReplace}); err != nil {
			u.log.Warnf("Failed to create product colors: %+v", err)
			return nil, err
		}
	}

	full, err := u.productRepo.FindByID(tx, product.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	committed = true
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	u.log.Infof("Product created: id=%s, sku=%s", product.ID, product.SKU)
	return u.converter.ProductToResponse(full), nil
}

func (u *catalogUsecase) GetAll(ctx context.Context, page, pageSize int) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	products, total, err := u.productRepo.FindAll(u.db.WithContext(ctx), pageSize, (page-1)*pageSize)
	if err != nil {
		u.log.Warnf("Failed to list products: %+v", err)
		return nil, err
	}

	return &dto.ProductListResponse{
		Products: u.converter.ProductsToResponses(products),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (u *catalogUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return u.converter.ProductToResponse(product), nil
}

// Update replaces the product wholesale. When the colors slice is
// present it is treated as the complete variant set.
func (u *catalogUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()
	committed := false
	defer func() {
		if !committed {
			batch.Discard()
		}
	}()

	product, err := u.productRepo.FindByIDLocked(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.SKU != "" {
		product.SKU = req.SKU
	}
	product.Name = req.Name
	if req.Slug != "" {
		product.Slug = req.Slug
	} else {
		product.Slug = slug.Make(req.Name)
	}
	product.Descriptions = req.Descriptions
	product.Price = req.Price
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	product.Weight = req.Weight
	product.Category = req.Category
	product.Subcategory = req.Subcategory
	product.Size = req.Size

	if req.Thumbnail != nil {
		stored, err := batch.Replace(product.Thumbnail, toUpload(req.Thumbnail), service.PrefixProductThumbnails)
		if err != nil {
			return nil, err
		}
		product.Thumbnail = &stored
	}

	// A non-empty images upload replaces the whole product gallery.
	if len(req.Images) > 0 {
		for _, old := range product.Image {
			batch.Doom(old)
		}
		images := entity.AssetList{}
		for _, upload := range req.Images {
			stored, err := batch.Store(toUpload(upload), service.PrefixProductImages)
			if err != nil {
				return nil, err
			}
			images = append(images, stored)
		}
		product.Image = images
	}

	hasColors := len(req.Colors) > 0
	if !hasColors && req.Stock != nil {
		count, err := u.colorRepo.CountByProduct(tx, id)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			product.Stock = *req.Stock
		}
	}

	if err := u.productRepo.Update(tx, product); err != nil {
		if mapped := mapProductConflict(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update product %s: %+v", id, err)
		return nil, err
	}

	if hasColors {
		inputs := toColorInputs(req.Colors)
		if err := u.variants.Reconcile(tx, batch, id, inputs, service.ReconcileOptions{Mode: service.ModeReplace}); err != nil {
			return nil, err
		}
	}

	full, err := u.productRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	committed = true
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	return u.converter.ProductToResponse(full), nil
}

// UpdateInline applies a partial edit: only the fields present change,
// colors in the payload are upserted and RemovedColors are deleted.
func (u *catalogUsecase) UpdateInline(ctx context.Context, id uuid.UUID, req *dto.UpdateProductInlineRequest) (*dto.ProductResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()
	committed := false
	defer func() {
		if !committed {
			batch.Discard()
		}
	}()

	product, err := u.productRepo.FindByIDLocked(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Descriptions != nil {
		product.Descriptions = *req.Descriptions
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Weight != nil {
		product.Weight = req.Weight
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Size != nil {
		product.Size = *req.Size
	}

	if req.Thumbnail != nil {
		stored, err := batch.Replace(product.Thumbnail, toUpload(req.Thumbnail), service.PrefixProductThumbnails)
		if err != nil {
			return nil, err
		}
		product.Thumbnail = &stored
	}

	// Partial edits append to the product gallery; removal goes through
	// the dedicated image endpoint.
	for _, upload := range req.Images {
		stored, err := batch.Store(toUpload(upload), service.PrefixProductImages)
		if err != nil {
			return nil, err
		}
		product.Image = append(product.Image, stored)
	}

	touchesColors := len(req.Colors) > 0 || len(req.RemovedColors) > 0
	if !touchesColors && req.Stock != nil {
		count, err := u.colorRepo.CountByProduct(tx, id)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			product.Stock = *req.Stock
		}
	}

	if err := u.productRepo.Update(tx, product); err != nil {
		if mapped := mapProductConflict(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update product %s: %+v", id, err)
		return nil, err
	}

	if touchesColors {
		inputs := toColorInputs(req.Colors)
		opts := service.ReconcileOptions{Mode: service.ModePartial, RemovedIDs: req.RemovedColors}
		if err := u.variants.Reconcile(tx, batch, id, inputs, opts); err != nil {
			return nil, err
		}
	}

	full, err := u.productRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	committed = true
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	return u.converter.ProductToResponse(full), nil
}

// Delete removes the product, its variants and every file they own.
func (u *catalogUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()

	product, err := u.productRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	u.assets.DeleteProductAssets(batch, product)
	for i := range product.Colors {
		u.assets.DeleteColorAssets(batch, &product.Colors[i])
	}

	if _, err := u.productRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete product %s: %+v", id, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	u.log.Infof("Product deleted: id=%s, sku=%s", id, product.SKU)
	return nil
}

// RemoveImage drops one product gallery slot by index.
func (u *catalogUsecase) RemoveImage(ctx context.Context, id uuid.UUID, index int) (*dto.ProductResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	batch := u.assets.NewBatch()

	product, err := u.productRepo.FindByIDLocked(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", id, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	updated, err := u.assets.RemoveAt(batch, product.Image, index)
	if err != nil {
		return nil, err
	}
	product.Image = updated

	if err := u.productRepo.Update(tx, product); err != nil {
		u.log.Warnf("Failed to update product %s: %+v", id, err)
		return nil, err
	}

	full, err := u.productRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	batch.Flush()
	u.shopCache.Invalidate(ctx)

	return u.converter.ProductToResponse(full), nil
}

func (u *catalogUsecase) NextSKU(ctx context.Context) (*dto.NextSKUResponse, error) {
	sku, err := u.skuGen.Generate(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to generate next SKU: %+v", err)
		return nil, err
	}
	return &dto.NextSKUResponse{SKU: sku}, nil
}

func (u *catalogUsecase) CheckSKU(ctx context.Context, sku string) (*dto.ExistsResponse, error) {
	exists, err := u.productRepo.ExistsSKU(u.db.WithContext(ctx), sku)
	if err != nil {
		u.log.Warnf("Failed to check SKU %s: %+v", sku, err)
		return nil, err
	}
	return &dto.ExistsResponse{Exists: exists}, nil
}

func (u *catalogUsecase) CheckSlug(ctx context.Context, slugValue string) (*dto.ExistsResponse, error) {
	exists, err := u.productRepo.ExistsSlug(u.db.WithContext(ctx), slugValue)
	if err != nil {
		u.log.Warnf("Failed to check slug %s: %+v", slugValue, err)
		return nil, err
	}
	return &dto.ExistsResponse{Exists: exists}, nil
}

// mapProductConflict translates unique violations on products into the
// usecase sentinels; any other error passes through as nil.
func mapProductConflict(err error) error {
	if isDuplicateKeyError(err, "sku") {
		return ErrSKUAlreadyExists
	}
	if isDuplicateKeyError(err, "slug") {
		return ErrSlugAlreadyExists
	}
	return nil
}

func toUpload(upload *dto.Upload) *service.Upload {
	if upload == nil {
		return nil
	}
	return &service.Upload{Name: upload.Name, Data: upload.Data}
}

func toUploads(uploads []*dto.Upload) []*service.Upload {
	if len(uploads) == 0 {
		return nil
	}
	converted := make([]*service.Upload, 0, len(uploads))
	for _, upload := range uploads {
		converted = append(converted, toUpload(upload))
	}
	return converted
}

func toColorInputs(colors []dto.ColorRequest) []service.ColorInput {
	inputs := make([]service.ColorInput, len(colors))
	for i, color := range colors {
		inputs[i] = service.ColorInput{
			ID:             color.ID,
			Name:           color.Name,
			Code:           color.Code,
			Stock:          color.Stock,
			IsDefault:      color.IsDefault,
			Image:          toUpload(color.Image),
			Gallery:        toUploads(color.Gallery),
			RemovedGallery: color.RemovedGallery,
		}
	}
	return inputs
}

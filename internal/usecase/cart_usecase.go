package usecase

import (
	"context"
	"errors"

	"tienda/internal/converter"
	"tienda/internal/delivery/dto"
	"tienda/internal/delivery/http/middleware"
	"tienda/internal/domain/entity"
	"tienda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrColorRequired      = errors.New("a color must be chosen for this product")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product is no longer available")
)

type CartUsecase interface {
	Get(ctx context.Context) (*dto.CartResponse, error)
	AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.CartResponse, error)
}

type cartUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	colorRepo   repository.ProductColorRepository
	converter   *converter.CartConverter
}

func NewCartUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	colorRepo repository.ProductColorRepository,
	cartConverter *converter.CartConverter,
) CartUsecase {
	return &cartUsecase{
		db:          db,
		log:         log,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		converter:   cartConverter,
	}
}

func (u *cartUsecase) Get(ctx context.Context) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	cart, err := u.cartRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find cart for user %s: %+v", userID, err)
		return nil, err
	}
	if cart == nil {
		// No cart yet; it is created lazily on the first add.
		return &dto.CartResponse{Items: []dto.CartItemResponse{}, Subtotal: decimal.Zero}, nil
	}

	return u.converter.CartToResponse(cart), nil
}

// AddItem puts a product (or one of its color variants) into the cart,
// snapshotting sku, name and unit price. Adding the same line again
// accumulates quantity.
func (u *cartUsecase) AddItem(ctx context.Context, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	product, err := u.productRepo.FindByID(tx, req.ProductID)
	if err != nil {
		u.log.Warnf("Failed to find product %s: %+v", req.ProductID, err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	var color *entity.ProductColor
	if req.ProductColorID != nil {
		color, err = u.colorRepo.FindByIDAndProduct(tx, *req.ProductColorID, req.ProductID)
		if err != nil {
			return nil, err
		}
		if color == nil {
			return nil, ErrColorNotFound
		}
	} else if product.HasVariants() {
		return nil, ErrColorRequired
	}

	cart, err := u.cartRepo.FindByUser(tx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &entity.Cart{UserID: userID}
		if err := u.cartRepo.Create(tx, cart); err != nil {
			u.log.Warnf("Failed to create cart for user %s: %+v", userID, err)
			return nil, err
		}
	}

	item, err := u.cartRepo.FindItem(tx, cart.ID, req.ProductID, req.ProductColorID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if item != nil {
		quantity += item.Quantity
	}

	available := product.Stock
	if color != nil {
		available = color.Stock
	}
	if quantity > available {
		return nil, ErrInsufficientStock
	}

	name := product.Name
	if color != nil {
		name = product.Name + " / " + color.Name
	}

	if item != nil {
		item.Quantity = quantity
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		if err := u.cartRepo.UpdateItem(tx, item); err != nil {
			u.log.Warnf("Failed to update cart item %s: %+v", item.ID, err)
			return nil, err
		}
	} else {
		item = &entity.CartItem{
			CartID:         cart.ID,
			ProductID:      req.ProductID,
			ProductColorID: req.ProductColorID,
			SKU:            product.SKU,
			Name:           name,
			UnitPrice:      product.Price,
			Quantity:       quantity,
			Subtotal:       product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		if err := u.cartRepo.CreateItem(tx, item); err != nil {
			// The product or variant can vanish between the lookup above
			// and the insert; the FK violation is the race showing up.
			if isForeignKeyError(err, "product") {
				return nil, ErrProductUnavailable
			}
			u.log.Warnf("Failed to create cart item: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.reload(ctx, userID)
}

func (u *cartUsecase) UpdateItem(ctx context.Context, itemID uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.ownedItem(tx, userID, itemID)
	if err != nil {
		return nil, err
	}

	available, err := u.availableStock(tx, item)
	if err != nil {
		return nil, err
	}
	if req.Quantity > available {
		return nil, ErrInsufficientStock
	}

	item.Quantity = req.Quantity
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if err := u.cartRepo.UpdateItem(tx, item); err != nil {
		u.log.Warnf("Failed to update cart item %s: %+v", itemID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.reload(ctx, userID)
}

func (u *cartUsecase) RemoveItem(ctx context.Context, itemID uuid.UUID) (*dto.CartResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	item, err := u.ownedItem(tx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := u.cartRepo.DeleteItem(tx, item.ID); err != nil {
		u.log.Warnf("Failed to delete cart item %s: %+v", itemID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.reload(ctx, userID)
}

// ownedItem loads a cart item and verifies it belongs to the user's
// cart.
func (u *cartUsecase) ownedItem(tx *gorm.DB, userID, itemID uuid.UUID) (*entity.CartItem, error) {
	item, err := u.cartRepo.FindItemByID(tx, itemID)
	if err != nil {
		u.log.Warnf("Failed to find cart item %s: %+v", itemID, err)
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	cart, err := u.cartRepo.FindByUser(tx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.ID != item.CartID {
		return nil, ErrCartItemNotFound
	}

	return item, nil
}

func (u *cartUsecase) availableStock(tx *gorm.DB, item *entity.CartItem) (int, error) {
	if item.ProductColorID != nil {
		color, err := u.colorRepo.FindByID(tx, *item.ProductColorID)
		if err != nil {
			return 0, err
		}
		if color == nil {
			return 0, ErrProductUnavailable
		}
		return color.Stock, nil
	}

	product, err := u.productRepo.FindByID(tx, item.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrProductUnavailable
	}
	return product.Stock, nil
}

func (u *cartUsecase) reload(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	cart, err := u.cartRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &dto.CartResponse{Items: []dto.CartItemResponse{}, Subtotal: decimal.Zero}, nil
	}
	return u.converter.CartToResponse(cart), nil
}

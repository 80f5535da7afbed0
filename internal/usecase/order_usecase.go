package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tienda/internal/converter"
	"tienda/internal/delivery/dto"
	"tienda/internal/delivery/http/middleware"
	"tienda/internal/domain/entity"
	"tienda/internal/domain/repository"
	"tienda/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOrderStatusFinal = errors.New("order is in a final status")
)

type OrderUsecase interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.OrderResponse, error)
	GetMyOrders(ctx context.Context, page, pageSize int) (*dto.OrderListResponse, error)
	GetAll(ctx context.Context, page, pageSize int) (*dto.OrderListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	colorRepo   repository.ProductColorRepository
	userRepo    repository.UserRepository
	stock       service.StockService
	shopCache   *service.ShopCache
}

func NewOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	colorRepo repository.ProductColorRepository,
	userRepo repository.UserRepository,
	stock service.StockService,
	shopCache *service.ShopCache,
) OrderUsecase {
	return &orderUsecase{
		db:          db,
		log:         log,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		userRepo:    userRepo,
		stock:       stock,
		shopCache:   shopCache,
	}
}

// Checkout turns the user's cart into an order. Stock is checked and
// decremented per line under the product row lock; product and color
// snapshots are frozen onto the order items.
func (u *orderUsecase) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.OrderResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cart, err := u.cartRepo.FindByUser(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find cart for user %s: %+v", userID, err)
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	currency := "MXN"
	subtotal := decimal.Zero
	items := make([]entity.OrderItem, 0, len(cart.Items))

	for i := range cart.Items {
		line := &cart.Items[i]

		product, err := u.productRepo.FindByIDLocked(tx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductUnavailable
		}
		currency = product.Currency

		colorName, err := u.reserveLineStock(tx, product, line.ProductColorID, line.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, entity.OrderItem{
			ProductID:      line.ProductID,
			ProductColorID: line.ProductColorID,
			ProductName:    product.Name,
			ColorName:      colorName,
			SKU:            line.SKU,
			ProductPrice:   line.UnitPrice,
			Quantity:       line.Quantity,
			Subtotal:       line.Subtotal,
		})
		subtotal = subtotal.Add(line.Subtotal)
	}

	shipping, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	var billing datatypes.JSON
	if req.BillingAddress != nil {
		encoded, err := json.Marshal(req.BillingAddress)
		if err != nil {
			return nil, err
		}
		billing = datatypes.JSON(encoded)
	}

	buyerName := req.BuyerName
	if buyerName == "" {
		buyerName = user.FullName
	}

	now := time.Now()
	order := &entity.Order{
		UserID:          &userID,
		BuyerEmail:      user.Email,
		BuyerName:       buyerName,
		ShippingAddress: datatypes.JSON(shipping),
		BillingAddress:  billing,
		Subtotal:        subtotal,
		GrandTotal:      subtotal,
		Currency:        currency,
		Status:          entity.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PlacedAt:        &now,
		Items:           items,
	}

	if err := u.orderRepo.Create(tx, order); err != nil {
		u.log.Warnf("Failed to create order: %+v", err)
		return nil, err
	}

	if err := u.cartRepo.DeleteItems(tx, cart.ID); err != nil {
		u.log.Warnf("Failed to clear cart %s: %+v", cart.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.shopCache.Invalidate(ctx)

	u.log.Infof("Order placed: id=%s, user=%s, total=%s %s", order.ID, userID, order.GrandTotal, order.Currency)
	return converter.OrderToResponse(order), nil
}

func (u *orderUsecase) GetMyOrders(ctx context.Context, page, pageSize int) (*dto.OrderListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	page, pageSize = normalizePage(page, pageSize)
	orders, total, err := u.orderRepo.FindByUser(u.db.WithContext(ctx), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		u.log.Warnf("Failed to list orders for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.OrderListResponse{
		Orders:   converter.OrdersToResponses(orders),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (u *orderUsecase) GetAll(ctx context.Context, page, pageSize int) (*dto.OrderListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	orders, total, err := u.orderRepo.FindAll(u.db.WithContext(ctx), pageSize, (page-1)*pageSize)
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, err
	}

	return &dto.OrderListResponse{
		Orders:   converter.OrdersToResponses(orders),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (u *orderUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", id, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return converter.OrderToResponse(order), nil
}

// UpdateStatus moves an order through its lifecycle. Cancelled and
// refunded are final; cancelling restores the reserved stock.
func (u *orderUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	order, err := u.orderRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", id, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusRefunded {
		return nil, ErrOrderStatusFinal
	}

	if req.Status == entity.OrderStatusCancelled {
		if err := u.restock(tx, order); err != nil {
			return nil, err
		}
	}

	order.Status = req.Status
	if err := u.orderRepo.Update(tx, order); err != nil {
		u.log.Warnf("Failed to update order %s: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	if req.Status == entity.OrderStatusCancelled {
		u.shopCache.Invalidate(ctx)
	}

	u.log.Infof("Order status changed: id=%s, status=%s", id, req.Status)
	return converter.OrderToResponse(order), nil
}

// reserveLineStock checks and decrements the stock behind one order
// line under the already-held product row lock. A variantless line is
// only valid while the product has no variants; if variants were added
// since the line entered the cart, decrementing products.stock directly
// would desync it from the variant sum, so the line is rejected.
func (u *orderUsecase) reserveLineStock(tx *gorm.DB, product *entity.Product, colorID *uuid.UUID, quantity int) (string, error) {
	if colorID != nil {
		color, err := u.colorRepo.FindByID(tx, *colorID)
		if err != nil {
			return "", err
		}
		if color == nil {
			return "", ErrProductUnavailable
		}
		if color.Stock < quantity {
			return "", ErrInsufficientStock
		}
		color.Stock -= quantity
		if err := u.colorRepo.Update(tx, color); err != nil {
			return "", err
		}
		if err := u.stock.Recompute(tx, product.ID); err != nil {
			return "", err
		}
		return color.Name, nil
	}

	variants, err := u.colorRepo.CountByProduct(tx, product.ID)
	if err != nil {
		return "", err
	}
	if variants > 0 {
		return "", ErrColorRequired
	}
	if product.Stock < quantity {
		return "", ErrInsufficientStock
	}
	if err := u.productRepo.UpdateStock(tx, product.ID, product.Stock-quantity); err != nil {
		return "", err
	}
	return "", nil
}

// restock returns the order's quantities to the catalog. Lines whose
// product or variant has since been deleted are skipped, as are
// variantless lines of a product that has grown variants since, where
// products.stock is owned by the variant sum.
func (u *orderUsecase) restock(tx *gorm.DB, order *entity.Order) error {
	for i := range order.Items {
		if err := u.restockLine(tx, &order.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *orderUsecase) restockLine(tx *gorm.DB, line *entity.OrderItem) error {
	product, err := u.productRepo.FindByIDLocked(tx, line.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}

	if line.ProductColorID != nil {
		color, err := u.colorRepo.FindByID(tx, *line.ProductColorID)
		if err != nil {
			return err
		}
		if color == nil {
			return nil
		}
		color.Stock += line.Quantity
		if err := u.colorRepo.Update(tx, color); err != nil {
			return err
		}
		return u.stock.Recompute(tx, product.ID)
	}

	variants, err := u.colorRepo.CountByProduct(tx, product.ID)
	if err != nil {
		return err
	}
	if variants > 0 {
		u.log.Warnf("Skipping restock of order item %s: product %s now has variants", line.ID, product.ID)
		return nil
	}
	return u.productRepo.UpdateStock(tx, product.ID, product.Stock+line.Quantity)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

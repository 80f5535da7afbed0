package converter

import (
	"tienda/internal/delivery/dto"
	"tienda/internal/domain/entity"
	"tienda/internal/service"

	"github.com/shopspring/decimal"
)

type CartConverter struct {
	assets service.AssetService
}

func NewCartConverter(assets service.AssetService) *CartConverter {
	return &CartConverter{assets: assets}
}

func (c *CartConverter) CartToResponse(cart *entity.Cart) *dto.CartResponse {
	if cart == nil {
		return nil
	}

	response := &dto.CartResponse{
		ID:        cart.ID,
		Items:     make([]dto.CartItemResponse, 0, len(cart.Items)),
		Subtotal:  decimal.Zero,
		UpdatedAt: cart.UpdatedAt,
	}

	for i := range cart.Items {
		item := c.CartItemToResponse(&cart.Items[i])
		response.Items = append(response.Items, *item)
		response.ItemCount += item.Quantity
		response.Subtotal = response.Subtotal.Add(item.Subtotal)
	}

	return response
}

func (c *CartConverter) CartItemToResponse(item *entity.CartItem) *dto.CartItemResponse {
	if item == nil {
		return nil
	}

	response := &dto.CartItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductColorID: item.ProductColorID,
		SKU:            item.SKU,
		Name:           item.Name,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		Subtotal:       item.Subtotal,
		CreatedAt:      item.CreatedAt,
	}

	if item.Product != nil && item.Product.Thumbnail != nil {
		response.Thumbnail = c.assets.URL(*item.Product.Thumbnail)
	}

	return response
}

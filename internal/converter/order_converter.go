package converter

import (
	"encoding/json"

	"tienda/internal/delivery/dto"
	"tienda/internal/domain/entity"
)

// OrderToResponse converts an Order entity to OrderResponse DTO
func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	response := &dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		BuyerEmail:      order.BuyerEmail,
		BuyerName:       order.BuyerName,
		ShippingAddress: json.RawMessage(order.ShippingAddress),
		Subtotal:        order.Subtotal,
		DiscountTotal:   order.DiscountTotal,
		ShippingTotal:   order.ShippingTotal,
		TaxTotal:        order.TaxTotal,
		GrandTotal:      order.GrandTotal,
		Currency:        order.Currency,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		PlacedAt:        order.PlacedAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if len(order.BillingAddress) > 0 {
		response.BillingAddress = json.RawMessage(order.BillingAddress)
	}

	for i := range order.Items {
		response.Items = append(response.Items, *OrderItemToResponse(&order.Items[i]))
	}

	return response
}

func OrderItemToResponse(item *entity.OrderItem) *dto.OrderItemResponse {
	if item == nil {
		return nil
	}

	return &dto.OrderItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductColorID: item.ProductColorID,
		ProductName:    item.ProductName,
		ColorName:      item.ColorName,
		SKU:            item.SKU,
		ProductPrice:   item.ProductPrice,
		Quantity:       item.Quantity,
		Subtotal:       item.Subtotal,
	}
}

func OrdersToResponses(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp := OrderToResponse(&orders[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

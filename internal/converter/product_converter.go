package converter

import (
	"tienda/internal/delivery/dto"
	"tienda/internal/domain/entity"
	"tienda/internal/service"
)

// ProductConverter builds product DTOs. It carries the asset service so
// stored paths come out as public URLs.
type ProductConverter struct {
	assets service.AssetService
}

func NewProductConverter(assets service.AssetService) *ProductConverter {
	return &ProductConverter{assets: assets}
}

func (c *ProductConverter) ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	response := &dto.ProductResponse{
		ID:           product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Slug:         product.Slug,
		Descriptions: product.Descriptions,
		Price:        product.Price,
		Currency:     product.Currency,
		Weight:       product.Weight,
		Images:       c.assets.URLs(product.Image),
		Stock:        product.Stock,
		Category:     product.Category,
		Subcategory:  product.Subcategory,
		Size:         product.Size,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}

	if product.Thumbnail != nil {
		response.Thumbnail = c.assets.URL(*product.Thumbnail)
	}

	if len(product.Colors) > 0 {
		response.Colors = c.ColorsToResponses(product.Colors)
	}

	return response
}

func (c *ProductConverter) ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp := c.ProductToResponse(&products[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func (c *ProductConverter) ColorToResponse(color *entity.ProductColor) *dto.ColorResponse {
	if color == nil {
		return nil
	}

	response := &dto.ColorResponse{
		ID:        color.ID,
		Name:      color.Name,
		Code:      color.Code,
		Stock:     color.Stock,
		IsDefault: color.IsDefault,
		Gallery:   c.assets.URLs(color.Gallery),
		CreatedAt: color.CreatedAt,
		UpdatedAt: color.UpdatedAt,
	}

	if color.Image != nil {
		response.Image = c.assets.URL(*color.Image)
	}

	return response
}

func (c *ProductConverter) ColorsToResponses(colors []entity.ProductColor) []dto.ColorResponse {
	responses := make([]dto.ColorResponse, len(colors))
	for i := range colors {
		resp := c.ColorToResponse(&colors[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

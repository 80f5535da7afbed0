package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ColorRequest struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	Name           string     `json:"name" validate:"required,max=50"`
	Code           *string    `json:"code,omitempty" validate:"omitempty,hexcolor6"`
	Stock          int        `json:"stock" validate:"min=0"`
	IsDefault      bool       `json:"is_default"`
	Image          *Upload    `json:"-"`
	Gallery        []*Upload  `json:"-"`
	RemovedGallery []string   `json:"removed_gallery,omitempty"`
}

type CreateProductRequest struct {
	SKU          string           `json:"sku" validate:"omitempty,max=64"`
	Name         string           `json:"name" validate:"required,max=160"`
	Slug         string           `json:"slug" validate:"omitempty,max=180"`
	Descriptions string           `json:"descriptions"`
	Price        decimal.Decimal  `json:"price" validate:"gte=0"`
	Currency     string           `json:"currency" validate:"omitempty,len=3"`
	Weight       *decimal.Decimal `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Category     string           `json:"category" validate:"required,max=120"`
	Subcategory  string           `json:"subcategory" validate:"omitempty,max=100"`
	Size         string           `json:"size" validate:"required,max=50"`
	// Stock only applies when the product has no colors; otherwise it
	// is derived from the variants.
	Stock     *int           `json:"stock,omitempty" validate:"omitempty,min=0"`
	Thumbnail *Upload        `json:"-"`
	Images    []*Upload      `json:"-"`
	Colors    []ColorRequest `json:"colors" validate:"dive"`
}

// UpdateProductRequest replaces the whole product: the colors slice is
// the complete variant set and stored colors missing from it are
// deleted.
type UpdateProductRequest struct {
	SKU          string           `json:"sku" validate:"omitempty,max=64"`
	Name         string           `json:"name" validate:"required,max=160"`
	Slug         string           `json:"slug" validate:"omitempty,max=180"`
	Descriptions string           `json:"descriptions"`
	Price        decimal.Decimal  `json:"price" validate:"gte=0"`
	Currency     string           `json:"currency" validate:"omitempty,len=3"`
	Weight       *decimal.Decimal `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Category     string           `json:"category" validate:"required,max=120"`
	Subcategory  string           `json:"subcategory" validate:"omitempty,max=100"`
	Size         string           `json:"size" validate:"required,max=50"`
	Stock        *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	Thumbnail    *Upload          `json:"-"`
	Images       []*Upload        `json:"-"`
	Colors       []ColorRequest   `json:"colors" validate:"dive"`
}

// UpdateProductInlineRequest is the partial edit: only the fields sent
// change, colors in the payload are upserted, and RemovedColors names
// the variants to delete.
type UpdateProductInlineRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,max=160"`
	Slug          *string          `json:"slug,omitempty" validate:"omitempty,max=180"`
	Descriptions  *string          `json:"descriptions,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency      *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Weight        *decimal.Decimal `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=120"`
	Subcategory   *string          `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Size          *string          `json:"size,omitempty" validate:"omitempty,max=50"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	Thumbnail     *Upload          `json:"-"`
	Images        []*Upload        `json:"-"`
	Colors        []ColorRequest   `json:"colors" validate:"dive"`
	RemovedColors []uuid.UUID      `json:"removed_colors,omitempty"`
}

// Response DTOs

type ColorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      *string   `json:"code,omitempty"`
	Stock     int       `json:"stock"`
	IsDefault bool      `json:"is_default"`
	Image     string    `json:"image,omitempty"`
	Gallery   []string  `json:"gallery,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Descriptions string           `json:"descriptions"`
	Price        decimal.Decimal  `json:"price"`
	Currency     string           `json:"currency"`
	Weight       *decimal.Decimal `json:"weight,omitempty"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
	Images       []string         `json:"images,omitempty"`
	Stock        int              `json:"stock"`
	Category     string           `json:"category"`
	Subcategory  string           `json:"subcategory,omitempty"`
	Size         string           `json:"size"`
	Colors       []ColorResponse  `json:"colors,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type NextSKUResponse struct {
	SKU string `json:"sku"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type GalleryResponse struct {
	Gallery []string `json:"gallery"`
}

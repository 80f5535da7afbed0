package dto

// Request DTOs

type ShopListRequest struct {
	Category string `json:"category" validate:"omitempty,max=120"`
	Size     string `json:"size" validate:"omitempty,max=50"`
	Search   string `json:"search" validate:"omitempty,max=160"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// Response DTOs

type ShopFacetsResponse struct {
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
}

type ShopListResponse struct {
	Products []ProductResponse  `json:"products"`
	Facets   ShopFacetsResponse `json:"facets"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type ShopDetailResponse struct {
	Product ProductResponse   `json:"product"`
	Related []ProductResponse `json:"related"`
}

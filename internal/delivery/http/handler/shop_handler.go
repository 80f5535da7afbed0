package handler

import (
	"net/http"
	"strconv"

	"tienda/internal/delivery/dto"
	"tienda/internal/usecase"
	"tienda/pkg/response"
	"tienda/pkg/validator"

	"github.com/gorilla/mux"
)

type ShopHandler struct {
	shopUsecase usecase.ShopUsecase
	validator   *validator.CustomValidator
}

func NewShopHandler(shopUsecase usecase.ShopUsecase, validator *validator.CustomValidator) *ShopHandler {
	return &ShopHandler{
		shopUsecase: shopUsecase,
		validator:   validator,
	}
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	req := &dto.ShopListRequest{
		Category: query.Get("category"),
		Size:     query.Get("size"),
		Search:   query.Get("search"),
		Page:     page,
		PageSize: pageSize,
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	listing, err := h.shopUsecase.List(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to load products")
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", listing)
}

func (h *ShopHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	detail, err := h.shopUsecase.Detail(r.Context(), slug)
	if err != nil {
		switch err {
		case usecase.ErrProductNotFound:
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to load product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", detail)
}

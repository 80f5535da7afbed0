package handler

import (
	"net/http"
	"strconv"

	"tienda/internal/service"
	"tienda/internal/usecase"
	"tienda/pkg/response"
	"tienda/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.catalogUsecase.Create(r.Context(), req)
	if err != nil {
		switch err {
		case usecase.ErrSKUAlreadyExists:
			response.Conflict(w, "SKU already exists")
		case usecase.ErrSlugAlreadyExists:
			response.Conflict(w, "Slug already exists")
		default:
			response.InternalServerError(w, "Failed to create product")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	products, err := h.catalogUsecase.GetAll(r.Context(), page, pageSize)
	if err != nil {
		response.InternalServerError(w, "Failed to get products")
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	product, err := h.catalogUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrProductNotFound:
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to get product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	req, err := parseUpdateProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.catalogUsecase.Update(r.Context(), id, req)
	if err != nil {
		h.writeProductError(w, err, "Failed to update product")
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) UpdateInline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	req, err := parseInlineProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.catalogUsecase.UpdateInline(r.Context(), id, req)
	if err != nil {
		h.writeProductError(w, err, "Failed to update product")
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}

	if err := h.catalogUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrProductNotFound:
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to delete product")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

// RemoveImage deletes one product gallery image by its index.
func (h *ProductHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image index", nil)
		return
	}

	product, err := h.catalogUsecase.RemoveImage(r.Context(), id, index)
	if err != nil {
		switch err {
		case usecase.ErrProductNotFound:
			response.NotFound(w, "Product not found")
		case service.ErrAssetIndexOutOfRange:
			response.Error(w, http.StatusBadRequest, "Image index out of range", nil)
		default:
			response.InternalServerError(w, "Failed to remove product image")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product image removed successfully", product)
}

func (h *ProductHandler) NextSKU(w http.ResponseWriter, r *http.Request) {
	sku, err := h.catalogUsecase.NextSKU(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to generate SKU")
		return
	}

	response.Success(w, http.StatusOK, "SKU generated successfully", sku)
}

func (h *ProductHandler) CheckSKU(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	if sku == "" {
		response.Error(w, http.StatusBadRequest, "sku query parameter is required", nil)
		return
	}

	result, err := h.catalogUsecase.CheckSKU(r.Context(), sku)
	if err != nil {
		response.InternalServerError(w, "Failed to check SKU")
		return
	}

	response.Success(w, http.StatusOK, "SKU checked successfully", result)
}

func (h *ProductHandler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		response.Error(w, http.StatusBadRequest, "slug query parameter is required", nil)
		return
	}

	result, err := h.catalogUsecase.CheckSlug(r.Context(), slug)
	if err != nil {
		response.InternalServerError(w, "Failed to check slug")
		return
	}

	response.Success(w, http.StatusOK, "Slug checked successfully", result)
}

func (h *ProductHandler) writeProductError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrProductNotFound:
		response.NotFound(w, "Product not found")
	case usecase.ErrSKUAlreadyExists:
		response.Conflict(w, "SKU already exists")
	case usecase.ErrSlugAlreadyExists:
		response.Conflict(w, "Slug already exists")
	case service.ErrVariantNotFound:
		response.NotFound(w, "Product color not found")
	case service.ErrLastColor:
		response.UnprocessableEntity(w, "A product must keep at least one color")
	default:
		response.InternalServerError(w, fallback)
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"tienda/internal/delivery/dto"
	"tienda/internal/usecase"
	"tienda/pkg/response"
	"tienda/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validator.CustomValidator
}

func NewCartHandler(cartUsecase usecase.CartUsecase, validator *validator.CustomValidator) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.Get(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get cart")
		return
	}

	response.Success(w, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), &req)
	if err != nil {
		h.writeCartError(w, err, "Failed to add item to cart")
		return
	}

	response.Success(w, http.StatusCreated, "Item added to cart", cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cart item ID", nil)
		return
	}

	var req dto.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	cart, err := h.cartUsecase.UpdateItem(r.Context(), itemID, &req)
	if err != nil {
		h.writeCartError(w, err, "Failed to update cart item")
		return
	}

	response.Success(w, http.StatusOK, "Cart item updated", cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cart item ID", nil)
		return
	}

	cart, err := h.cartUsecase.RemoveItem(r.Context(), itemID)
	if err != nil {
		h.writeCartError(w, err, "Failed to remove cart item")
		return
	}

	response.Success(w, http.StatusOK, "Cart item removed", cart)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrProductNotFound:
		response.NotFound(w, "Product not found")
	case usecase.ErrColorNotFound:
		response.NotFound(w, "Product color not found")
	case usecase.ErrCartItemNotFound:
		response.NotFound(w, "Cart item not found")
	case usecase.ErrColorRequired:
		response.Error(w, http.StatusBadRequest, "A color must be chosen for this product", nil)
	case usecase.ErrInsufficientStock:
		response.Conflict(w, "Insufficient stock")
	case usecase.ErrProductUnavailable:
		response.Conflict(w, "Product is no longer available")
	default:
		response.InternalServerError(w, fallback)
	}
}

package handler

import (
	"net/http"
	"strconv"

	"tienda/internal/service"
	"tienda/internal/usecase"
	"tienda/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ColorHandler struct {
	colorUsecase usecase.ColorUsecase
}

func NewColorHandler(colorUsecase usecase.ColorUsecase) *ColorHandler {
	return &ColorHandler{colorUsecase: colorUsecase}
}

func (h *ColorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	colorID, err := uuid.Parse(vars["colorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid color ID", nil)
		return
	}

	if err := h.colorUsecase.Delete(r.Context(), productID, colorID); err != nil {
		switch err {
		case usecase.ErrProductNotFound:
			response.NotFound(w, "Product not found")
		case usecase.ErrColorNotFound:
			response.NotFound(w, "Product color not found")
		case service.ErrLastColor:
			response.UnprocessableEntity(w, "A product must keep at least one color")
		default:
			response.InternalServerError(w, "Failed to delete product color")
		}
		return
	}

	response.Success(w, http.StatusOK, "Product color deleted successfully", nil)
}

func (h *ColorHandler) RemoveGalleryImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID", nil)
		return
	}
	colorID, err := uuid.Parse(vars["colorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid color ID", nil)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image index", nil)
		return
	}

	color, err := h.colorUsecase.RemoveGalleryImage(r.Context(), productID, colorID, index)
	if err != nil {
		switch err {
		case usecase.ErrColorNotFound:
			response.NotFound(w, "Product color not found")
		case service.ErrAssetIndexOutOfRange:
			response.Error(w, http.StatusBadRequest, "Image index out of range", nil)
		default:
			response.InternalServerError(w, "Failed to remove gallery image")
		}
		return
	}

	response.Success(w, http.StatusOK, "Gallery image removed successfully", color)
}

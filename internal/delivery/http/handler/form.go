package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"sort"
	"strconv"

	"tienda/internal/delivery/dto"
	pkgvalidator "tienda/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxFormMemory = 32 << 20

// Color fields arrive as indexed keys, e.g. colors[0][name],
// colors[0][gallery][].
var colorFieldPattern = regexp.MustCompile(`^colors\[(\d+)\]\[([a-z_]+)\](\[\])?$`)

// readUpload pulls one uploaded file into memory and runs the size and
// format checks.
func readUpload(fh *multipart.FileHeader) (*dto.Upload, error) {
	if fh.Size > pkgvalidator.MaxImageSize {
		return nil, fmt.Errorf("%s: %w", fh.Filename, pkgvalidator.ErrImageTooLarge)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, pkgvalidator.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if err := pkgvalidator.ValidateImage(data); err != nil {
		return nil, fmt.Errorf("%s: %w", fh.Filename, err)
	}

	return &dto.Upload{Name: fh.Filename, Data: data}, nil
}

func readUploads(headers []*multipart.FileHeader) ([]*dto.Upload, error) {
	uploads := make([]*dto.Upload, 0, len(headers))
	for _, fh := range headers {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func formValue(r *http.Request, key string) string {
	values := r.MultipartForm.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func formHas(r *http.Request, key string) bool {
	_, ok := r.MultipartForm.Value[key]
	return ok
}

func parseBoolField(value string) bool {
	return value == "1" || value == "true" || value == "on"
}

func parseDecimalField(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

// parseColorForms reconstructs the ordered color payload from the
// indexed multipart keys.
func parseColorForms(r *http.Request) ([]dto.ColorRequest, error) {
	colors := make(map[int]*dto.ColorRequest)

	at := func(index int) *dto.ColorRequest {
		if c, ok := colors[index]; ok {
			return c
		}
		c := &dto.ColorRequest{}
		colors[index] = c
		return c
	}

	for key, values := range r.MultipartForm.Value {
		match := colorFieldPattern.FindStringSubmatch(key)
		if match == nil || len(values) == 0 {
			continue
		}
		index, _ := strconv.Atoi(match[1])
		color := at(index)

		switch match[2] {
		case "id":
			if values[0] != "" {
				id, err := uuid.Parse(values[0])
				if err != nil {
					return nil, fmt.Errorf("colors[%d][id]: invalid uuid", index)
				}
				color.ID = &id
			}
		case "name":
			color.Name = values[0]
		case "code":
			if values[0] != "" {
				code := values[0]
				color.Code = &code
			}
		case "stock":
			stock, err := strconv.Atoi(values[0])
			if err != nil {
				return nil, fmt.Errorf("colors[%d][stock]: invalid number", index)
			}
			color.Stock = stock
		case "is_default":
			color.IsDefault = parseBoolField(values[0])
		case "removed_gallery":
			color.RemovedGallery = append(color.RemovedGallery, values...)
		}
	}

	for key, headers := range r.MultipartForm.File {
		match := colorFieldPattern.FindStringSubmatch(key)
		if match == nil || len(headers) == 0 {
			continue
		}
		index, _ := strconv.Atoi(match[1])
		color := at(index)

		switch match[2] {
		case "image":
			upload, err := readUpload(headers[0])
			if err != nil {
				return nil, err
			}
			color.Image = upload
		case "gallery":
			uploads, err := readUploads(headers)
			if err != nil {
				return nil, err
			}
			color.Gallery = append(color.Gallery, uploads...)
		}
	}

	indexes := make([]int, 0, len(colors))
	for index := range colors {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	ordered := make([]dto.ColorRequest, 0, len(indexes))
	for _, index := range indexes {
		ordered = append(ordered, *colors[index])
	}
	return ordered, nil
}

func parseRemovedColors(r *http.Request) ([]uuid.UUID, error) {
	values := r.MultipartForm.Value["removed_colors[]"]
	values = append(values, r.MultipartForm.Value["removed_colors"]...)

	removed := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("removed_colors: invalid uuid %q", value)
		}
		removed = append(removed, id)
	}
	return removed, nil
}

func parseStockField(r *http.Request) (*int, error) {
	if !formHas(r, "stock") || formValue(r, "stock") == "" {
		return nil, nil
	}
	stock, err := strconv.Atoi(formValue(r, "stock"))
	if err != nil {
		return nil, fmt.Errorf("stock: invalid number")
	}
	return &stock, nil
}

func parseWeightField(r *http.Request) (*decimal.Decimal, error) {
	if formValue(r, "weight") == "" {
		return nil, nil
	}
	weight, err := decimal.NewFromString(formValue(r, "weight"))
	if err != nil {
		return nil, fmt.Errorf("weight: invalid number")
	}
	return &weight, nil
}

func parseProductFiles(r *http.Request) (*dto.Upload, []*dto.Upload, error) {
	var thumbnail *dto.Upload
	if headers := r.MultipartForm.File["thumbnail"]; len(headers) > 0 {
		upload, err := readUpload(headers[0])
		if err != nil {
			return nil, nil, err
		}
		thumbnail = upload
	}

	headers := r.MultipartForm.File["images[]"]
	headers = append(headers, r.MultipartForm.File["images"]...)
	images, err := readUploads(headers)
	if err != nil {
		return nil, nil, err
	}

	return thumbnail, images, nil
}

func parseCreateProductForm(r *http.Request) (*dto.CreateProductRequest, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	price, err := parseDecimalField(formValue(r, "price"))
	if err != nil {
		return nil, fmt.Errorf("price: invalid number")
	}
	weight, err := parseWeightField(r)
	if err != nil {
		return nil, err
	}
	stock, err := parseStockField(r)
	if err != nil {
		return nil, err
	}
	thumbnail, images, err := parseProductFiles(r)
	if err != nil {
		return nil, err
	}
	colors, err := parseColorForms(r)
	if err != nil {
		return nil, err
	}

	return &dto.CreateProductRequest{
		SKU:          formValue(r, "sku"),
		Name:         formValue(r, "name"),
		Slug:         formValue(r, "slug"),
		Descriptions: formValue(r, "descriptions"),
		Price:        price,
		Currency:     formValue(r, "currency"),
		Weight:       weight,
		Category:     formValue(r, "category"),
		Subcategory:  formValue(r, "subcategory"),
		Size:         formValue(r, "size"),
		Stock:        stock,
		Thumbnail:    thumbnail,
		Images:       images,
		Colors:       colors,
	}, nil
}

func parseUpdateProductForm(r *http.Request) (*dto.UpdateProductRequest, error) {
	create, err := parseCreateProductForm(r)
	if err != nil {
		return nil, err
	}

	return &dto.UpdateProductRequest{
		SKU:          create.SKU,
		Name:         create.Name,
		Slug:         create.Slug,
		Descriptions: create.Descriptions,
		Price:        create.Price,
		Currency:     create.Currency,
		Weight:       create.Weight,
		Category:     create.Category,
		Subcategory:  create.Subcategory,
		Size:         create.Size,
		Stock:        create.Stock,
		Thumbnail:    create.Thumbnail,
		Images:       create.Images,
		Colors:       create.Colors,
	}, nil
}

// parseInlineProductForm only fills the fields actually present in the
// form, so absent keys stay untouched on the product.
func parseInlineProductForm(r *http.Request) (*dto.UpdateProductInlineRequest, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	req := &dto.UpdateProductInlineRequest{}

	setString := func(key string, target **string) {
		if formHas(r, key) {
			value := formValue(r, key)
			*target = &value
		}
	}
	setString("name", &req.Name)
	setString("slug", &req.Slug)
	setString("descriptions", &req.Descriptions)
	setString("currency", &req.Currency)
	setString("category", &req.Category)
	setString("subcategory", &req.Subcategory)
	setString("size", &req.Size)

	if formHas(r, "price") {
		price, err := parseDecimalField(formValue(r, "price"))
		if err != nil {
			return nil, fmt.Errorf("price: invalid number")
		}
		req.Price = &price
	}

	weight, err := parseWeightField(r)
	if err != nil {
		return nil, err
	}
	req.Weight = weight

	stock, err := parseStockField(r)
	if err != nil {
		return nil, err
	}
	req.Stock = stock

	thumbnail, images, err := parseProductFiles(r)
	if err != nil {
		return nil, err
	}
	req.Thumbnail = thumbnail
	req.Images = images

	colors, err := parseColorForms(r)
	if err != nil {
		return nil, err
	}
	req.Colors = colors

	removed, err := parseRemovedColors(r)
	if err != nil {
		return nil, err
	}
	req.RemovedColors = removed

	return req, nil
}

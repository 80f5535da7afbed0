package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 32)...)

type formFile struct {
	field, name string
	data        []byte
}

func newMultipartRequest(t *testing.T, fields map[string][]string, files []formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(maxFormMemory))
	return req
}

func TestParseColorForms_OrdersByIndex(t *testing.T) {
	existingID := uuid.New()
	req := newMultipartRequest(t, map[string][]string{
		"colors[2][name]":              {"Azul"},
		"colors[2][stock]":             {"4"},
		"colors[0][id]":                {existingID.String()},
		"colors[0][name]":              {"Rojo"},
		"colors[0][code]":              {"#FF0000"},
		"colors[0][stock]":             {"7"},
		"colors[0][is_default]":        {"on"},
		"colors[0][removed_gallery][]": {"products/colors/gallery/a.png", "products/colors/gallery/b.png"},
	}, nil)

	colors, err := parseColorForms(req)

	require.NoError(t, err)
	require.Len(t, colors, 2)

	assert.Equal(t, "Rojo", colors[0].Name)
	require.NotNil(t, colors[0].ID)
	assert.Equal(t, existingID, *colors[0].ID)
	require.NotNil(t, colors[0].Code)
	assert.Equal(t, "#FF0000", *colors[0].Code)
	assert.Equal(t, 7, colors[0].Stock)
	assert.True(t, colors[0].IsDefault)
	assert.Len(t, colors[0].RemovedGallery, 2)

	assert.Equal(t, "Azul", colors[1].Name)
	assert.Nil(t, colors[1].ID)
	assert.Equal(t, 4, colors[1].Stock)
	assert.False(t, colors[1].IsDefault)
}

func TestParseColorForms_FilesAttachToTheirColor(t *testing.T) {
	req := newMultipartRequest(t, map[string][]string{
		"colors[0][name]":  {"Rojo"},
		"colors[0][stock]": {"1"},
	}, []formFile{
		{field: "colors[0][image]", name: "swatch.png", data: pngBytes},
		{field: "colors[0][gallery][]", name: "g1.png", data: pngBytes},
		{field: "colors[0][gallery][]", name: "g2.png", data: pngBytes},
	})

	colors, err := parseColorForms(req)

	require.NoError(t, err)
	require.Len(t, colors, 1)
	require.NotNil(t, colors[0].Image)
	assert.Equal(t, "swatch.png", colors[0].Image.Name)
	assert.Len(t, colors[0].Gallery, 2)
}

func TestParseColorForms_InvalidIDRejected(t *testing.T) {
	req := newMultipartRequest(t, map[string][]string{
		"colors[0][id]":   {"not-a-uuid"},
		"colors[0][name]": {"Rojo"},
	}, nil)

	_, err := parseColorForms(req)

	assert.Error(t, err)
}

func TestParseCreateProductForm(t *testing.T) {
	req := newMultipartRequest(t, map[string][]string{
		"sku":      {"SKU-00042"},
		"name":     {"Camisa lino"},
		"price":    {"499.90"},
		"category": {"camisas"},
		"size":     {"M"},
		"stock":    {"10"},
	}, []formFile{
		{field: "thumbnail", name: "thumb.png", data: pngBytes},
		{field: "images[]", name: "front.png", data: pngBytes},
		{field: "images[]", name: "back.png", data: pngBytes},
	})

	form, err := parseCreateProductForm(req)

	require.NoError(t, err)
	assert.Equal(t, "SKU-00042", form.SKU)
	assert.Equal(t, "Camisa lino", form.Name)
	assert.True(t, form.Price.Equal(decimal.RequireFromString("499.90")))
	require.NotNil(t, form.Stock)
	assert.Equal(t, 10, *form.Stock)
	require.NotNil(t, form.Thumbnail)
	assert.Len(t, form.Images, 2)
	assert.Empty(t, form.Colors)
}

func TestParseCreateProductForm_RejectsNonImageUpload(t *testing.T) {
	req := newMultipartRequest(t, map[string][]string{
		"name": {"Camisa"},
	}, []formFile{
		{field: "thumbnail", name: "thumb.png", data: []byte("plain text, not an image")},
	})

	_, err := parseCreateProductForm(req)

	assert.Error(t, err)
}

func TestParseInlineProductForm_OnlyPresentFieldsSet(t *testing.T) {
	removedID := uuid.New()
	req := newMultipartRequest(t, map[string][]string{
		"name":             {"Nuevo nombre"},
		"price":            {"120"},
		"removed_colors[]": {removedID.String()},
	}, nil)

	form, err := parseInlineProductForm(req)

	require.NoError(t, err)
	require.NotNil(t, form.Name)
	assert.Equal(t, "Nuevo nombre", *form.Name)
	require.NotNil(t, form.Price)
	assert.True(t, form.Price.Equal(decimal.NewFromInt(120)))
	assert.Nil(t, form.Slug)
	assert.Nil(t, form.Category)
	assert.Nil(t, form.Stock)
	assert.Nil(t, form.Thumbnail)
	require.Len(t, form.RemovedColors, 1)
	assert.Equal(t, removedID, form.RemovedColors[0])
}

func TestParseStockField_EmptyValueIsAbsent(t *testing.T) {
	req := newMultipartRequest(t, map[string][]string{
		"stock": {""},
	}, nil)

	stock, err := parseStockField(req)

	assert.NoError(t, err)
	assert.Nil(t, stock)
}

func TestParseBoolField(t *testing.T) {
	assert.True(t, parseBoolField("1"))
	assert.True(t, parseBoolField("true"))
	assert.True(t, parseBoolField("on"))
	assert.False(t, parseBoolField("0"))
	assert.False(t, parseBoolField(""))
}

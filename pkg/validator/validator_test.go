package validator_test

import (
	"testing"

	"tienda/internal/delivery/dto"
	"tienda/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type colorPayload struct {
	Code string `validate:"omitempty,hexcolor6"`
}

func TestHexColor6_AcceptsFullHex(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(colorPayload{Code: "#FF0000"}))
	assert.NoError(t, v.Validate(colorPayload{Code: "#a1b2c3"}))
}

func TestHexColor6_RejectsShorthandAndBareHex(t *testing.T) {
	v := validator.NewValidator()

	assert.Error(t, v.Validate(colorPayload{Code: "#F00"}))
	assert.Error(t, v.Validate(colorPayload{Code: "FF0000"}))
	assert.Error(t, v.Validate(colorPayload{Code: "#GG0000"}))
}

func TestHexColor6_OmitemptySkipsBlank(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(colorPayload{}))
}

func TestValidate_RejectsNegativePrice(t *testing.T) {
	v := validator.NewValidator()

	err := v.Validate(&dto.CreateProductRequest{
		Name:     "Gorro",
		Price:    decimal.NewFromInt(-50),
		Category: "gorros",
		Size:     "M",
	})
	assert.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Contains(t, formatted["Price"], "greater than or equal to")
}

func TestValidate_AcceptsZeroAndPositivePrice(t *testing.T) {
	v := validator.NewValidator()

	req := &dto.CreateProductRequest{
		Name:     "Gorro",
		Price:    decimal.Zero,
		Category: "gorros",
		Size:     "M",
	}
	assert.NoError(t, v.Validate(req))

	req.Price = decimal.RequireFromString("499.90")
	assert.NoError(t, v.Validate(req))
}

func TestValidate_RejectsNegativeInlinePriceAndWeight(t *testing.T) {
	v := validator.NewValidator()

	price := decimal.NewFromInt(-1)
	assert.Error(t, v.Validate(&dto.UpdateProductInlineRequest{Price: &price}))

	weight := decimal.RequireFromString("-0.5")
	assert.Error(t, v.Validate(&dto.UpdateProductInlineRequest{Weight: &weight}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.NewValidator()

	payload := struct {
		Email string `validate:"required,email"`
		Code  string `validate:"hexcolor6"`
	}{Email: "not-an-email", Code: "red"}

	err := v.Validate(payload)
	assert.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Code must be a hex color like #FF0000", formatted["Code"])
}

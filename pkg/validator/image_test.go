package validator_test

import (
	"bytes"
	"testing"

	"tienda/pkg/validator"

	"github.com/stretchr/testify/assert"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
)

func TestValidateImage_AcceptsPNGAndJPEG(t *testing.T) {
	assert.NoError(t, validator.ValidateImage(append(pngHeader, make([]byte, 64)...)))
	assert.NoError(t, validator.ValidateImage(append(jpegHeader, make([]byte, 64)...)))
}

func TestValidateImage_RejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, validator.ValidateImage(nil), validator.ErrImageEmpty)
	assert.ErrorIs(t, validator.ValidateImage([]byte{}), validator.ErrImageEmpty)
}

func TestValidateImage_RejectsOversize(t *testing.T) {
	data := append(pngHeader, bytes.Repeat([]byte{0}, validator.MaxImageSize)...)

	assert.ErrorIs(t, validator.ValidateImage(data), validator.ErrImageTooLarge)
}

func TestValidateImage_RejectsNonImageContent(t *testing.T) {
	assert.ErrorIs(t, validator.ValidateImage([]byte("<html>not an image</html>")), validator.ErrImageBadFormat)
	assert.ErrorIs(t, validator.ValidateImage([]byte("plain text file")), validator.ErrImageBadFormat)
}

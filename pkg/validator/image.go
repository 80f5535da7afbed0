package validator

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize caps uploaded image files at 4 MiB.
const MaxImageSize = 4 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrImageTooLarge  = fmt.Errorf("image exceeds %d bytes", MaxImageSize)
	ErrImageEmpty     = errors.New("image file is empty")
	ErrImageBadFormat = errors.New("image must be jpeg, png or webp")
)

// ValidateImage sniffs the actual content type of an upload; the file
// extension is not trusted. Rejection happens before any store call.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return ErrImageEmpty
	}
	if len(data) > MaxImageSize {
		return ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return ErrImageBadFormat
}

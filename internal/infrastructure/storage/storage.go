// Package storage abstracts the blob store that holds product and
// variant assets. Two drivers are available: "local" (filesystem) and
// "s3" (any S3-compatible object store).
package storage

import (
	"fmt"

	"tienda/config"
)

// Disk is the blob store contract the asset manager depends on.
// Delete is idempotent: removing an absent path is not an error.
type Disk interface {
	Put(path string, content []byte) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	URL(path string) string
}

// NewDisk builds the configured driver.
func NewDisk(cfg config.StorageConfig) (Disk, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalDisk(cfg), nil
	case "s3":
		return NewS3Disk(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

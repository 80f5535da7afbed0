package service

import (
	"fmt"
	"path"
	"strings"

	"tienda/internal/domain/entity"
	"tienda/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Storage prefixes per asset kind. A stored path is owned by exactly
// one database field; replacing or clearing the field deletes the file.
const (
	PrefixProductThumbnails = "products/thumbnails"
	PrefixProductImages     = "products/images"
	PrefixColorImages       = "products/colors"
	PrefixColorGallery      = "products/colors/gallery"
)

var ErrAssetIndexOutOfRange = fmt.Errorf("asset index out of range")

// Upload is a validated in-memory uploaded file.
type Upload struct {
	Name string
	Data []byte
}

// AssetService keeps the blob store consistent with the database fields
// that reference assets. All mutation goes through an AssetBatch scoped
// to one write request, so a rolled-back transaction can discard every
// newly stored file and a committed one can flush deferred deletes.
type AssetService interface {
	NewBatch() *AssetBatch
	RemoveAt(batch *AssetBatch, list entity.AssetList, index int) (entity.AssetList, error)
	ApplyGalleryEdit(batch *AssetBatch, current entity.AssetList, removals []string, uploads []*Upload, prefix string) (entity.AssetList, error)
	DeleteProductAssets(batch *AssetBatch, product *entity.Product)
	DeleteColorAssets(batch *AssetBatch, color *entity.ProductColor)
	URL(p string) string
	URLs(list entity.AssetList) []string
}

type assetService struct {
	disk storage.Disk
	log  *logrus.Logger
}

func NewAssetService(disk storage.Disk, log *logrus.Logger) AssetService {
	return &assetService{disk: disk, log: log}
}

func (s *assetService) NewBatch() *AssetBatch {
	return &AssetBatch{disk: s.disk, log: s.log}
}

// RemoveAt deletes the file at index and reindexes the remaining
// entries contiguously. An emptied list becomes nil (stored as NULL).
func (s *assetService) RemoveAt(batch *AssetBatch, list entity.AssetList, index int) (entity.AssetList, error) {
	if index < 0 || index >= len(list) {
		return list, ErrAssetIndexOutOfRange
	}

	batch.Doom(list[index])

	updated := make(entity.AssetList, 0, len(list)-1)
	updated = append(updated, list[:index]...)
	updated = append(updated, list[index+1:]...)
	if len(updated) == 0 {
		return nil, nil
	}
	return updated, nil
}

// ApplyGalleryEdit removes the named entries first, then appends the
// new uploads, preserving the relative order of survivors followed by
// new entries. Removal entries may be stored paths or public URLs.
func (s *assetService) ApplyGalleryEdit(batch *AssetBatch, current entity.AssetList, removals []string, uploads []*Upload, prefix string) (entity.AssetList, error) {
	gallery := append(entity.AssetList(nil), current...)

	for _, entry := range removals {
		target := s.relativePath(entry)
		for i, stored := range gallery {
			if stored == target {
				batch.Doom(stored)
				gallery = append(gallery[:i], gallery[i+1:]...)
				break
			}
		}
	}

	for _, upload := range uploads {
		stored, err := batch.Store(upload, prefix)
		if err != nil {
			return current, err
		}
		gallery = append(gallery, stored)
	}

	if len(gallery) == 0 {
		return nil, nil
	}
	return gallery, nil
}

// DeleteProductAssets queues every file the product row owns: the
// thumbnail plus the gallery. Variant assets are queued separately.
func (s *assetService) DeleteProductAssets(batch *AssetBatch, product *entity.Product) {
	if product.Thumbnail != nil {
		batch.Doom(*product.Thumbnail)
	}
	for _, p := range product.Image {
		batch.Doom(p)
	}
}

func (s *assetService) DeleteColorAssets(batch *AssetBatch, color *entity.ProductColor) {
	if color.Image != nil {
		batch.Doom(*color.Image)
	}
	for _, p := range color.Gallery {
		batch.Doom(p)
	}
}

func (s *assetService) URL(p string) string {
	if p == "" {
		return ""
	}
	return s.disk.URL(p)
}

func (s *assetService) URLs(list entity.AssetList) []string {
	urls := make([]string, len(list))
	for i, p := range list {
		urls[i] = s.disk.URL(p)
	}
	return urls
}

// relativePath strips a public URL down to the stored path so clients
// may send either form when removing gallery entries.
func (s *assetService) relativePath(entry string) string {
	if idx := strings.Index(entry, "/storage/"); idx >= 0 {
		return entry[idx+len("/storage/"):]
	}
	if idx := strings.Index(entry, "://"); idx >= 0 {
		base := s.disk.URL("")
		if base != "" && strings.HasPrefix(entry, base) {
			return strings.TrimLeft(strings.TrimPrefix(entry, base), "/")
		}
	}
	return strings.TrimLeft(entry, "/")
}

// AssetBatch tracks the asset side effects of one write request.
//
// Stored files are remembered so Discard can clean them up when the
// enclosing transaction rolls back. Deletions of previously owned
// files are deferred (doomed) until Flush, which runs after a
// successful commit; a rollback therefore never destroys an asset the
// database still references.
type AssetBatch struct {
	disk   storage.Disk
	log    *logrus.Logger
	stored []string
	doomed []string
}

// Store writes the upload under prefix with a fresh name, keeping the
// original extension.
func (b *AssetBatch) Store(upload *Upload, prefix string) (string, error) {
	ext := strings.ToLower(path.Ext(upload.Name))
	dest := path.Join(prefix, uuid.New().String()+ext)

	if err := b.disk.Put(dest, upload.Data); err != nil {
		return "", fmt.Errorf("store %s: %w", dest, err)
	}

	b.stored = append(b.stored, dest)
	return dest, nil
}

// Replace stores the new upload first and only then queues the current
// path for deletion, so a failed store never destroys the prior asset.
func (b *AssetBatch) Replace(current *string, upload *Upload, prefix string) (string, error) {
	stored, err := b.Store(upload, prefix)
	if err != nil {
		return "", err
	}
	if current != nil && *current != "" {
		b.Doom(*current)
	}
	return stored, nil
}

// Doom queues a previously owned path for deletion at Flush time.
func (b *AssetBatch) Doom(path string) {
	if path == "" {
		return
	}
	b.doomed = append(b.doomed, path)
}

// Discard removes every file stored through this batch. Called when
// the enclosing transaction rolls back; best effort.
func (b *AssetBatch) Discard() {
	for _, p := range b.stored {
		if err := b.disk.Delete(p); err != nil {
			b.log.Warnf("Failed to clean up stored asset %s: %+v", p, err)
		}
	}
	b.stored = nil
	b.doomed = nil
}

// Flush deletes the doomed paths after a successful commit. A missing
// file is not an error; other failures are logged and skipped.
func (b *AssetBatch) Flush() {
	for _, p := range b.doomed {
		if err := b.disk.Delete(p); err != nil {
			b.log.Warnf("Failed to delete replaced asset %s: %+v", p, err)
		}
	}
	b.stored = nil
	b.doomed = nil
}

package service_test

import (
	"strings"
	"testing"

	"tienda/internal/domain/entity"
	"tienda/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newAssetService(disk *fakeDisk) service.AssetService {
	return service.NewAssetService(disk, logrus.New())
}

func TestBatchStore_KeepsLowercasedExtension(t *testing.T) {
	disk := newFakeDisk()
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	stored, err := batch.Store(&service.Upload{Name: "Photo.JPG", Data: []byte("jpeg-bytes")}, service.PrefixProductImages)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "products/images/"))
	assert.True(t, strings.HasSuffix(stored, ".jpg"))
	assert.True(t, disk.Exists(stored))
}

func TestBatchReplace_DefersDeletionUntilFlush(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/thumbnails/old.png"] = []byte("old")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	current := "products/thumbnails/old.png"
	stored, err := batch.Replace(&current, &service.Upload{Name: "new.png", Data: []byte("new")}, service.PrefixProductThumbnails)

	assert.NoError(t, err)
	assert.True(t, disk.Exists(stored))
	assert.True(t, disk.Exists("products/thumbnails/old.png"))

	batch.Flush()

	assert.True(t, disk.Exists(stored))
	assert.False(t, disk.Exists("products/thumbnails/old.png"))
}

func TestBatchReplace_FailedStoreKeepsOriginal(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/thumbnails/old.png"] = []byte("old")
	disk.failPut = true
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	current := "products/thumbnails/old.png"
	_, err := batch.Replace(&current, &service.Upload{Name: "new.png", Data: []byte("new")}, service.PrefixProductThumbnails)

	assert.Error(t, err)

	batch.Flush()

	assert.True(t, disk.Exists("products/thumbnails/old.png"))
}

func TestBatchDiscard_RemovesOnlyNewlyStoredFiles(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/images/kept.png"] = []byte("kept")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	stored, err := batch.Store(&service.Upload{Name: "tmp.png", Data: []byte("tmp")}, service.PrefixProductImages)
	assert.NoError(t, err)
	batch.Doom("products/images/kept.png")

	batch.Discard()

	assert.False(t, disk.Exists(stored))
	assert.True(t, disk.Exists("products/images/kept.png"))

	// The doomed list was dropped with the batch.
	batch.Flush()
	assert.True(t, disk.Exists("products/images/kept.png"))
}

func TestBatchFlush_ToleratesMissingFiles(t *testing.T) {
	disk := newFakeDisk()
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	batch.Doom("products/images/already-gone.png")
	batch.Doom("")

	batch.Flush()
}

func TestRemoveAt_ReindexesRemainingEntries(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/images/a.png"] = []byte("a")
	disk.files["products/images/b.png"] = []byte("b")
	disk.files["products/images/c.png"] = []byte("c")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	list := entity.AssetList{"products/images/a.png", "products/images/b.png", "products/images/c.png"}

	updated, err := svc.RemoveAt(batch, list, 1)

	assert.NoError(t, err)
	assert.Equal(t, entity.AssetList{"products/images/a.png", "products/images/c.png"}, updated)

	batch.Flush()
	assert.False(t, disk.Exists("products/images/b.png"))
	assert.True(t, disk.Exists("products/images/a.png"))
}

func TestRemoveAt_EmptiedListBecomesNil(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/images/only.png"] = []byte("x")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	updated, err := svc.RemoveAt(batch, entity.AssetList{"products/images/only.png"}, 0)

	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestRemoveAt_IndexOutOfRange(t *testing.T) {
	disk := newFakeDisk()
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	list := entity.AssetList{"products/images/a.png"}

	_, err := svc.RemoveAt(batch, list, 1)
	assert.ErrorIs(t, err, service.ErrAssetIndexOutOfRange)

	_, err = svc.RemoveAt(batch, list, -1)
	assert.ErrorIs(t, err, service.ErrAssetIndexOutOfRange)
}

func TestApplyGalleryEdit_RemovesByURLThenAppends(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/colors/gallery/a.png"] = []byte("a")
	disk.files["products/colors/gallery/b.png"] = []byte("b")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	current := entity.AssetList{"products/colors/gallery/a.png", "products/colors/gallery/b.png"}
	removals := []string{"http://assets.test/storage/products/colors/gallery/a.png"}
	uploads := []*service.Upload{{Name: "c.png", Data: []byte("c")}}

	updated, err := svc.ApplyGalleryEdit(batch, current, removals, uploads, service.PrefixColorGallery)

	assert.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.Equal(t, "products/colors/gallery/b.png", updated[0])
	assert.True(t, disk.Exists(updated[1]))

	batch.Flush()
	assert.False(t, disk.Exists("products/colors/gallery/a.png"))
}

func TestApplyGalleryEdit_RemovesByStoredPath(t *testing.T) {
	disk := newFakeDisk()
	disk.files["products/colors/gallery/a.png"] = []byte("a")
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	current := entity.AssetList{"products/colors/gallery/a.png"}

	updated, err := svc.ApplyGalleryEdit(batch, current, []string{"products/colors/gallery/a.png"}, nil, service.PrefixColorGallery)

	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestApplyGalleryEdit_UnknownRemovalIsIgnored(t *testing.T) {
	disk := newFakeDisk()
	svc := newAssetService(disk)
	batch := svc.NewBatch()

	current := entity.AssetList{"products/colors/gallery/a.png"}

	updated, err := svc.ApplyGalleryEdit(batch, current, []string{"products/colors/gallery/nope.png"}, nil, service.PrefixColorGallery)

	assert.NoError(t, err)
	assert.Equal(t, current, updated)
}

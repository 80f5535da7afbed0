package service

import (
	"errors"

	"tienda/internal/domain/entity"
	"tienda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrLastColor rejects removing the sole remaining variant of a
	// product; only deleting the whole product may do that.
	ErrLastColor = errors.New("cannot delete the only color of the product")

	ErrVariantNotFound = errors.New("product color not found")
)

// ReconcileMode selects how the incoming color set is matched against
// the stored one.
type ReconcileMode int

const (
	// ModeReplace treats the payload as the complete variant set: any
	// stored color whose id is absent from it is deleted.
	ModeReplace ReconcileMode = iota
	// ModePartial only deletes colors named in RemovedIDs; everything
	// else in the payload is created or updated independently.
	ModePartial
)

type ReconcileOptions struct {
	Mode       ReconcileMode
	RemovedIDs []uuid.UUID
}

// ColorInput is one variant payload of a catalog write.
type ColorInput struct {
	ID        *uuid.UUID
	Name      string
	Code      *string
	Stock     int
	IsDefault bool
	// Image replaces the variant image when set.
	Image *Upload
	// Gallery uploads. In ModeReplace a non-empty set replaces the
	// whole gallery; in ModePartial they are appended after the
	// RemovedGallery entries are dropped.
	Gallery        []*Upload
	RemovedGallery []string
}

// VariantService owns every ProductColor mutation so all entry points
// share one reconciliation algorithm and the stock and default-variant
// invariants hold no matter which admin view drove the write.
type VariantService interface {
	Reconcile(tx *gorm.DB, batch *AssetBatch, productID uuid.UUID, inputs []ColorInput, opts ReconcileOptions) error
	DeleteColor(tx *gorm.DB, batch *AssetBatch, color *entity.ProductColor) error
	RemoveGalleryImage(tx *gorm.DB, batch *AssetBatch, color *entity.ProductColor, index int) (entity.AssetList, error)
}

type variantService struct {
	log       *logrus.Logger
	colorRepo repository.ProductColorRepository
	assets    AssetService
	stock     StockService
}

func NewVariantService(
	log *logrus.Logger,
	colorRepo repository.ProductColorRepository,
	assets AssetService,
	stock StockService,
) VariantService {
	return &variantService{
		log:       log,
		colorRepo: colorRepo,
		assets:    assets,
		stock:     stock,
	}
}

func (s *variantService) Reconcile(tx *gorm.DB, batch *AssetBatch, productID uuid.UUID, inputs []ColorInput, opts ReconcileOptions) error {
	existing, err := s.colorRepo.FindByProduct(tx, productID)
	if err != nil {
		return err
	}

	existingByID := make(map[uuid.UUID]*entity.ProductColor, len(existing))
	for i := range existing {
		existingByID[existing[i].ID] = &existing[i]
	}

	keep := make(map[uuid.UUID]bool, len(inputs))
	var lastDefault *uuid.UUID
	created := 0

	for i := range inputs {
		input := &inputs[i]

		if input.ID != nil {
			color, ok := existingByID[*input.ID]
			if !ok {
				return ErrVariantNotFound
			}
			if err := s.updateColor(tx, batch, color, input, opts.Mode); err != nil {
				return err
			}
			keep[color.ID] = true
			if input.IsDefault {
				id := color.ID
				lastDefault = &id
			}
			continue
		}

		color, err := s.createColor(tx, batch, productID, input)
		if err != nil {
			return err
		}
		keep[color.ID] = true
		created++
		if input.IsDefault {
			id := color.ID
			lastDefault = &id
		}
	}

	toDelete := s.deletionSet(existing, keep, opts)

	// A reconciliation may never leave a product that had variants
	// with none; whole-product deletion is the only way out.
	if len(existing) > 0 {
		remaining := len(existing) - len(toDelete) + created
		if remaining == 0 {
			return ErrLastColor
		}
	}

	defaultDeleted := false
	for _, color := range toDelete {
		s.assets.DeleteColorAssets(batch, color)
		if err := s.colorRepo.Delete(tx, color.ID); err != nil {
			return err
		}
		if color.IsDefault {
			defaultDeleted = true
		}
	}

	if lastDefault != nil {
		if err := s.colorRepo.ClearDefaults(tx, productID, *lastDefault); err != nil {
			return err
		}
	} else if defaultDeleted {
		if err := s.promoteDefault(tx, productID); err != nil {
			return err
		}
	}

	return s.stock.Recompute(tx, productID)
}

func (s *variantService) updateColor(tx *gorm.DB, batch *AssetBatch, color *entity.ProductColor, input *ColorInput, mode ReconcileMode) error {
	color.Name = input.Name
	color.Code = input.Code
	color.Stock = input.Stock
	color.IsDefault = input.IsDefault

	if input.Image != nil {
		stored, err := batch.Replace(color.Image, input.Image, PrefixColorImages)
		if err != nil {
			return err
		}
		color.Image = &stored
	}

	switch mode {
	case ModeReplace:
		if len(input.Gallery) > 0 {
			for _, old := range color.Gallery {
				batch.Doom(old)
			}
			gallery := entity.AssetList{}
			for _, upload := range input.Gallery {
				stored, err := batch.Store(upload, PrefixColorGallery)
				if err != nil {
					return err
				}
				gallery = append(gallery, stored)
			}
			color.Gallery = gallery
		}
	case ModePartial:
		gallery, err := s.assets.ApplyGalleryEdit(batch, color.Gallery, input.RemovedGallery, input.Gallery, PrefixColorGallery)
		if err != nil {
			return err
		}
		color.Gallery = gallery
	}

	return s.colorRepo.Update(tx, color)
}

func (s *variantService) createColor(tx *gorm.DB, batch *AssetBatch, productID uuid.UUID, input *ColorInput) (*entity.ProductColor, error) {
	color := &entity.ProductColor{
		ProductID: productID,
		Name:      input.Name,
		Code:      input.Code,
		Stock:     input.Stock,
		IsDefault: input.IsDefault,
	}

	if input.Image != nil {
		stored, err := batch.Store(input.Image, PrefixColorImages)
		if err != nil {
			return nil, err
		}
		color.Image = &stored
	}

	if len(input.Gallery) > 0 {
		gallery := entity.AssetList{}
		for _, upload := range input.Gallery {
			stored, err := batch.Store(upload, PrefixColorGallery)
			if err != nil {
				return nil, err
			}
			gallery = append(gallery, stored)
		}
		color.Gallery = gallery
	}

	if err := s.colorRepo.Create(tx, color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *variantService) deletionSet(existing []entity.ProductColor, keep map[uuid.UUID]bool, opts ReconcileOptions) []*entity.ProductColor {
	var toDelete []*entity.ProductColor

	switch opts.Mode {
	case ModeReplace:
		for i := range existing {
			if !keep[existing[i].ID] {
				toDelete = append(toDelete, &existing[i])
			}
		}
	case ModePartial:
		byID := make(map[uuid.UUID]*entity.ProductColor, len(existing))
		for i := range existing {
			byID[existing[i].ID] = &existing[i]
		}
		// RemovedIDs may repeat an id; each color is deleted once so the
		// remaining-variant count stays honest.
		seen := make(map[uuid.UUID]bool, len(opts.RemovedIDs))
		for _, id := range opts.RemovedIDs {
			if keep[id] || seen[id] {
				continue
			}
			seen[id] = true
			if color, ok := byID[id]; ok {
				toDelete = append(toDelete, color)
			}
		}
	}

	return toDelete
}

func (s *variantService) promoteDefault(tx *gorm.DB, productID uuid.UUID) error {
	colors, err := s.colorRepo.FindByProduct(tx, productID)
	if err != nil {
		return err
	}
	if len(colors) == 0 {
		return nil
	}
	for i := range colors {
		if colors[i].IsDefault {
			return nil
		}
	}

	colors[0].IsDefault = true
	return s.colorRepo.Update(tx, &colors[0])
}

// DeleteColor removes a single variant outside a full reconciliation.
// It refuses to delete the last variant and promotes a new default
// when the deleted one carried the flag.
func (s *variantService) DeleteColor(tx *gorm.DB, batch *AssetBatch, color *entity.ProductColor) error {
	count, err := s.colorRepo.CountByProduct(tx, color.ProductID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastColor
	}

	if color.IsDefault {
		other, err := s.colorRepo.FindFirstOther(tx, color.ProductID, color.ID)
		if err != nil {
			return err
		}
		if other != nil {
			other.IsDefault = true
			if err := s.colorRepo.Update(tx, other); err != nil {
				return err
			}
		}
	}

	s.assets.DeleteColorAssets(batch, color)
	if err := s.colorRepo.Delete(tx, color.ID); err != nil {
		return err
	}

	return s.stock.Recompute(tx, color.ProductID)
}

// RemoveGalleryImage drops one gallery slot of a variant by index.
func (s *variantService) RemoveGalleryImage(tx *gorm.DB, batch *AssetBatch, color *entity.ProductColor, index int) (entity.AssetList, error) {
	updated, err := s.assets.RemoveAt(batch, color.Gallery, index)
	if err != nil {
		return color.Gallery, err
	}

	color.Gallery = updated
	if err := s.colorRepo.Update(tx, color); err != nil {
		return color.Gallery, err
	}
	return updated, nil
}

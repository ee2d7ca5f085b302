package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const (
	folderProducts   = "products"
	folderCategories = "categories"
	folderTeams      = "teams"
	folderReviews    = "reviews"
	folderAvatars    = "avatars"
)

// imageManager uploads pending images before a mutation and cleans up after it.
type imageManager struct {
	store   service.ImageStore
	metrics service.BusinessMetrics
	logger  *slog.Logger
}

func (m *imageManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, m.logger)
}

// resolve hosts every pending upload. A hosted input is only accepted when it
// names one of owned, the images the record already holds, and the stored copy
// is kept. The second result holds only the newly uploaded images so the
// caller can discard them when the mutation fails. On error nothing stays
// uploaded.
func (m *imageManager) resolve(ctx context.Context, folder string, inputs []entity.ImageInput, owned []entity.Image) ([]entity.Image, []entity.Image, error) {
	ownedByID := make(map[string]entity.Image, len(owned))
	for _, img := range owned {
		ownedByID[img.PublicID] = img
	}
	for _, input := range inputs {
		if input.Hosted == nil || input.IsUpload() {
			continue
		}
		if _, ok := ownedByID[input.Hosted.PublicID]; !ok {
			return nil, nil, domainerrors.ErrValidationFailed.
				WithDetails("image " + input.Hosted.PublicID + " does not belong to this record").
				WrapMessage("invalid hosted image")
		}
	}

	images := make([]entity.Image, 0, len(inputs))
	var uploaded []entity.Image

	for _, input := range inputs {
		switch {
		case input.IsUpload():
			img, err := m.store.Upload(ctx, folder, *input.Upload)
			if err != nil {
				m.discard(ctx, uploaded)

				return nil, nil, uploadError(err, input.Upload.Filename)
			}
			uploaded = append(uploaded, img)
			images = append(images, img)
		case input.Hosted != nil:
			images = append(images, ownedByID[input.Hosted.PublicID])
		}
	}

	return images, uploaded, nil
}

// discard deletes images best-effort.
func (m *imageManager) discard(ctx context.Context, images []entity.Image) {
	for _, id := range entity.PublicIDs(images) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.metrics.SideEffectFailed("image_delete")
			m.log(ctx).Warn("Failed to delete hosted image",
				slog.String("public_id", id),
				slog.Any("error", err),
			)
		}
	}
}

// discardReplaced deletes the images of previous that are no longer in current.
func (m *imageManager) discardReplaced(ctx context.Context, previous, current []entity.Image) {
	kept := make(map[string]struct{}, len(current))
	for _, img := range current {
		kept[img.PublicID] = struct{}{}
	}

	var removed []entity.Image
	for _, img := range previous {
		if _, ok := kept[img.PublicID]; !ok {
			removed = append(removed, img)
		}
	}

	m.discard(ctx, removed)
}

func uploadError(err error, filename string) error {
	if errors.Is(err, service.ErrImageTooLarge) || errors.Is(err, service.ErrUnsupportedImageType) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error()).WrapMessage("invalid image " + filename)
	}

	return domainerrors.ErrImageUploadFailed.WrapMessage(err.Error())
}

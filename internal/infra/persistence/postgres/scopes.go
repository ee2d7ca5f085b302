package postgres

import (
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// paginate applies offset and limit for a page request. A zero limit returns every row.
func paginate(page entity.PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}

		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

// likePattern builds a case-insensitive substring pattern for LOWER(column) LIKE ?.
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(keyword))

	return "%" + escaped + "%"
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

func toImagesDomain(data []model.ImageData) []entity.Image {
	images := make([]entity.Image, 0, len(data))
	for _, img := range data {
		images = append(images, entity.Image{PublicID: img.PublicID, URL: img.URL})
	}

	return images
}

func fromImagesDomain(images []entity.Image) []model.ImageData {
	data := make([]model.ImageData, 0, len(images))
	for _, img := range images {
		data = append(data, model.ImageData{PublicID: img.PublicID, URL: img.URL})
	}

	return data
}

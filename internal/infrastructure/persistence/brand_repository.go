package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/infrastructure/persistence/models"
)

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// LoadRegistry loads every registry row and builds the in-memory index.
// Inactive rows are loaded too; the registry constructor skips them, which
// keeps the skip rule in one place.
func (r *GormBrandRepository) LoadRegistry(ctx context.Context) (*catalog.BrandRegistry, error) {
	var brandModels []models.BrandModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brandModels).Error; err != nil {
		return nil, err
	}

	entries := make([]catalog.BrandRegistryEntry, len(brandModels))
	for i, m := range brandModels {
		entries[i] = m.ToDomain()
	}
	return catalog.NewBrandRegistry(entries), nil
}

var _ catalog.BrandRepository = (*GormBrandRepository)(nil)

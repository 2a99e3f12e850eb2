package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
	"github.com/brownstreet/backend/internal/infrastructure/persistence/models"
)

// GormVisionSignalRepository implements catalog.VisionSignalRepository using GORM
type GormVisionSignalRepository struct {
	db *gorm.DB
}

// NewGormVisionSignalRepository creates a new GormVisionSignalRepository
func NewGormVisionSignalRepository(db *gorm.DB) *GormVisionSignalRepository {
	return &GormVisionSignalRepository{db: db}
}

// Upsert inserts or replaces the signal row for one product
func (r *GormVisionSignalRepository) Upsert(ctx context.Context, signal *catalog.VisionSignal) error {
	model := &models.VisionSignalModel{}
	model.FromDomain(signal)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_no"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByProductNo finds the signal row for one product
func (r *GormVisionSignalRepository) FindByProductNo(ctx context.Context, productNo string) (*catalog.VisionSignal, error) {
	var model models.VisionSignalModel
	if err := r.db.WithContext(ctx).First(&model, "product_no = ?", productNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ catalog.VisionSignalRepository = (*GormVisionSignalRepository)(nil)

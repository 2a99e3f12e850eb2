package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
	"github.com/brownstreet/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db         *gorm.DB
	thresholds catalog.LifecycleThresholds
	now        func() time.Time
}

// NewGormItemRepository creates a new GormItemRepository. The lifecycle
// thresholds are needed to express stage drift as a query predicate.
func NewGormItemRepository(db *gorm.DB, thresholds catalog.LifecycleThresholds) *GormItemRepository {
	return &GormItemRepository{db: db, thresholds: thresholds, now: time.Now}
}

// Upsert inserts or replaces the cache row keyed by product number
func (r *GormItemRepository) Upsert(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	model := models.ItemModelFromDomain(item)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_no"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByProductNo finds the cache row for one product
func (r *GormItemRepository) FindByProductNo(ctx context.Context, productNo string) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "product_no = ?", productNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindStageDrifted finds items whose cached stage no longer matches the
// stage derived from their age. The stage function is mirrored as a CASE
// expression over the effective registration date so drift is computed in
// the database instead of scanning every row.
func (r *GormItemRepository) FindStageDrifted(ctx context.Context, limit int) ([]catalog.Item, error) {
	now := r.now()
	newCutoff := now.AddDate(0, 0, -r.thresholds.NewDays)
	curatedCutoff := now.AddDate(0, 0, -r.thresholds.CuratedDays)
	archiveCutoff := now.AddDate(0, 0, -r.thresholds.ArchiveDays)

	var itemModels []models.ItemModel
	err := r.db.WithContext(ctx).
		Where(`(CASE
			WHEN COALESCE(lifecycle_override, registered_at) >= ? THEN 'NEW'
			WHEN COALESCE(lifecycle_override, registered_at) >= ? THEN 'CURATED'
			WHEN COALESCE(lifecycle_override, registered_at) >= ? THEN 'ARCHIVE'
			ELSE 'CLEARANCE'
		END) <> stage`, newCutoff, curatedCutoff, archiveCutoff).
		Order("registered_at ASC").
		Limit(limit).
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(itemModels))
	for i, m := range itemModels {
		items[i] = *m.ToDomain()
	}
	return items, nil
}

// CountUnclassified counts items that have never been classified
func (r *GormItemRepository) CountUnclassified(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("classified_at IS NULL").
		Count(&count).Error
	return count, err
}

// FindUnclassified finds items that have never been classified, oldest first
func (r *GormItemRepository) FindUnclassified(ctx context.Context, limit int) ([]catalog.Item, error) {
	var itemModels []models.ItemModel
	err := r.db.WithContext(ctx).
		Where("classified_at IS NULL").
		Order("registered_at ASC").
		Limit(limit).
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(itemModels))
	for i, m := range itemModels {
		items[i] = *m.ToDomain()
	}
	return items, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)

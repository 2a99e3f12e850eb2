package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/infrastructure/persistence/models"
)

// GormSyncAttemptRepository implements catalog.SyncAttemptRepository using GORM
type GormSyncAttemptRepository struct {
	db *gorm.DB
}

// NewGormSyncAttemptRepository creates a new GormSyncAttemptRepository
func NewGormSyncAttemptRepository(db *gorm.DB) *GormSyncAttemptRepository {
	return &GormSyncAttemptRepository{db: db}
}

// Append inserts one audit row. Rows are never updated.
func (r *GormSyncAttemptRepository) Append(ctx context.Context, attempt *catalog.SyncAttempt) error {
	model := &models.SyncAttemptModel{}
	model.FromDomain(attempt)
	return r.db.WithContext(ctx).Create(model).Error
}

// List returns audit rows newest first, with the total row count for paging
func (r *GormSyncAttemptRepository) List(ctx context.Context, page, pageSize int) ([]catalog.SyncAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SyncAttemptModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attemptModels []models.SyncAttemptModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&attemptModels).Error
	if err != nil {
		return nil, 0, err
	}

	attempts := make([]catalog.SyncAttempt, len(attemptModels))
	for i, m := range attemptModels {
		attempts[i] = *m.ToDomain()
	}
	return attempts, total, nil
}

var _ catalog.SyncAttemptRepository = (*GormSyncAttemptRepository)(nil)

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
	"github.com/brownstreet/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ItemModel{},
		&models.SyncAttemptModel{},
		&models.VisionSignalModel{},
		&models.BrandModel{},
	))
	return db
}

func TestGormItemRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository(newTestDB(t), catalog.DefaultLifecycleThresholds())

	archive := catalog.CategoryWorkwear
	item := &catalog.Item{
		ProductNo:       "1001",
		Name:            "CARHARTT DETROIT JACKET",
		Brand:           "CARHARTT",
		RegisteredAt:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Stage:           catalog.StageNew,
		ArchiveCategory: &archive,
		SellerTags:      []string{"빈티지", "BS뉴"},
		UpdatedAt:       time.Now(),
	}

	require.NoError(t, repo.Upsert(ctx, item))

	got, err := repo.FindByProductNo(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "CARHARTT DETROIT JACKET", got.Name)
	assert.Equal(t, []string{"빈티지", "BS뉴"}, got.SellerTags)
	require.NotNil(t, got.ArchiveCategory)
	assert.Equal(t, catalog.CategoryWorkwear, *got.ArchiveCategory)

	// Second upsert replaces the row, not duplicates it.
	item.SellerTags = []string{"빈티지", "BS워크웨어"}
	item.Stage = catalog.StageCurated
	require.NoError(t, repo.Upsert(ctx, item))

	got, err = repo.FindByProductNo(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, []string{"빈티지", "BS워크웨어"}, got.SellerTags)
	assert.Equal(t, catalog.StageCurated, got.Stage)
}

func TestGormItemRepository_FindMissing(t *testing.T) {
	repo := NewGormItemRepository(newTestDB(t), catalog.DefaultLifecycleThresholds())

	_, err := repo.FindByProductNo(context.Background(), "absent")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormItemRepository_UpsertRejectsInvalid(t *testing.T) {
	repo := NewGormItemRepository(newTestDB(t), catalog.DefaultLifecycleThresholds())

	err := repo.Upsert(context.Background(), &catalog.Item{})
	assert.Error(t, err)
}

func TestGormItemRepository_FindStageDrifted(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo := NewGormItemRepository(newTestDB(t), catalog.DefaultLifecycleThresholds())
	repo.now = func() time.Time { return now }

	seed := func(no string, daysAgo int, stage catalog.LifecycleStage, override *time.Time) {
		require.NoError(t, repo.Upsert(ctx, &catalog.Item{
			ProductNo:         no,
			Name:              "item " + no,
			RegisteredAt:      now.AddDate(0, 0, -daysAgo),
			LifecycleOverride: override,
			Stage:             stage,
			UpdatedAt:         now,
		}))
	}

	overrideDate := now.AddDate(0, 0, -5)
	seed("1", 10, catalog.StageNew, nil)            // still NEW
	seed("2", 40, catalog.StageNew, nil)            // drifted to CURATED
	seed("3", 200, catalog.StageArchive, nil)       // drifted to CLEARANCE
	seed("4", 300, catalog.StageNew, &overrideDate) // override keeps it NEW
	seed("5", 100, catalog.StageArchive, nil)       // still ARCHIVE

	drifted, err := repo.FindStageDrifted(ctx, 10)
	require.NoError(t, err)

	nos := make([]string, 0, len(drifted))
	for _, item := range drifted {
		nos = append(nos, item.ProductNo)
	}
	assert.ElementsMatch(t, []string{"2", "3"}, nos)
}

func TestGormItemRepository_Unclassified(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewGormItemRepository(newTestDB(t), catalog.DefaultLifecycleThresholds())

	classified := now.Add(-time.Hour)
	require.NoError(t, repo.Upsert(ctx, &catalog.Item{ProductNo: "1", RegisteredAt: now.AddDate(0, 0, -2), UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &catalog.Item{ProductNo: "2", RegisteredAt: now.AddDate(0, 0, -1), UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &catalog.Item{ProductNo: "3", RegisteredAt: now, ClassifiedAt: &classified, UpdatedAt: now}))

	count, err := repo.CountUnclassified(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	items, err := repo.FindUnclassified(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductNo, "oldest first")
}

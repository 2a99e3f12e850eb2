package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
)

func TestGormVisionSignalRepository_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewGormVisionSignalRepository(newTestDB(t))

	signal := &catalog.VisionSignal{
		ProductNo:  "1001",
		Brand:      "CARHARTT",
		Colors:     []string{"BROWN", "BLACK"},
		Confidence: 80,
		Status:     catalog.VisionPending,
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, signal))

	signal.Status = catalog.VisionCompleted
	signal.GarmentType = "OUTER"
	signal.Confidence = 92
	require.NoError(t, repo.Upsert(ctx, signal))

	got, err := repo.FindByProductNo(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, catalog.VisionCompleted, got.Status)
	assert.Equal(t, "OUTER", got.GarmentType)
	assert.Equal(t, 92, got.Confidence)
	assert.Equal(t, []string{"BROWN", "BLACK"}, got.Colors)
}

func TestGormVisionSignalRepository_FindMissing(t *testing.T) {
	repo := NewGormVisionSignalRepository(newTestDB(t))

	_, err := repo.FindByProductNo(context.Background(), "absent")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

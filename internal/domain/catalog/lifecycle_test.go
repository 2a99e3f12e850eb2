package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleFor_StageBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	thresholds := DefaultLifecycleThresholds()

	tests := []struct {
		daysAgo int
		want    LifecycleStage
	}{
		{0, StageNew},
		{30, StageNew},
		{31, StageCurated},
		{60, StageCurated},
		{61, StageArchive},
		{150, StageArchive},
		{151, StageClearance},
		{400, StageClearance},
	}

	for _, tt := range tests {
		registered := now.AddDate(0, 0, -tt.daysAgo)
		got := LifecycleFor(registered, nil, now, thresholds)
		assert.Equal(t, tt.want, got.Stage, "at %d days", tt.daysAgo)
		assert.Equal(t, tt.daysAgo, got.DaysSince)
		assert.NotEmpty(t, got.Reason)
	}
}

func TestLifecycleFor_MonotonicInAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	thresholds := DefaultLifecycleThresholds()
	order := map[LifecycleStage]int{StageNew: 0, StageCurated: 1, StageArchive: 2, StageClearance: 3}

	prev := StageNew
	for days := 0; days <= 200; days++ {
		got := LifecycleFor(now.AddDate(0, 0, -days), nil, now, thresholds)
		assert.GreaterOrEqual(t, order[got.Stage], order[prev], "stage regressed at %d days", days)
		prev = got.Stage
	}
}

func TestLifecycleFor_OverrideReplacesRegistration(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	registered := now.AddDate(0, 0, -300)
	override := now.AddDate(0, 0, -5)

	got := LifecycleFor(registered, &override, now, DefaultLifecycleThresholds())

	assert.Equal(t, StageNew, got.Stage)
	assert.Equal(t, 5, got.DaysSince)
}

func TestLifecycleFor_ZeroDateDefaultsToNew(t *testing.T) {
	got := LifecycleFor(time.Time{}, nil, time.Now(), DefaultLifecycleThresholds())
	assert.Equal(t, StageNew, got.Stage)
	assert.Equal(t, 0, got.DaysSince)
}

func TestLifecycleFor_FutureRegistrationClampsToZero(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	got := LifecycleFor(now.AddDate(0, 0, 3), nil, now, DefaultLifecycleThresholds())
	assert.Equal(t, StageNew, got.Stage)
	assert.Equal(t, 0, got.DaysSince)
}

func TestLifecycleThresholds_Validate(t *testing.T) {
	require.NoError(t, DefaultLifecycleThresholds().Validate())

	bad := []LifecycleThresholds{
		{NewDays: 0, CuratedDays: 60, ArchiveDays: 150},
		{NewDays: 30, CuratedDays: 30, ArchiveDays: 150},
		{NewDays: 30, CuratedDays: 60, ArchiveDays: 60},
		{NewDays: -1, CuratedDays: 60, ArchiveDays: 150},
	}
	for _, th := range bad {
		assert.Error(t, th.Validate())
	}
}

func TestLifecycleStage_Category(t *testing.T) {
	assert.Equal(t, CategoryNew, StageNew.Category())
	assert.Equal(t, CategoryCurated, StageCurated.Category())
	assert.Equal(t, CategoryArchive, StageArchive.Category())
	assert.Equal(t, CategoryClearance, StageClearance.Category())
}

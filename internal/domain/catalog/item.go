package catalog

import (
	"time"

	"github.com/brownstreet/backend/internal/domain/shared"
)

// Item is the local cache row for one inventory unit, keyed by the upstream
// platform's origin product number. The upstream platform owns the listing;
// this row caches what the engine last observed or wrote so that repeated
// syncs can be skipped.
type Item struct {
	ProductNo          string
	Name               string
	Brand              string
	Description        string
	RegisteredAt       time.Time
	LifecycleOverride  *time.Time
	Stage              LifecycleStage
	ArchiveCategory    *Category
	SellerTags         []string
	DisplayCategoryIDs []string
	ClassifiedAt       *time.Time
	SyncedAt           *time.Time
	UpdatedAt          time.Time
}

// Validate checks the item's invariants.
func (i *Item) Validate() error {
	if i.ProductNo == "" {
		return shared.NewDomainError("INVALID_ITEM", "product number is required")
	}
	if len(i.SellerTags) > MaxSellerTags {
		return shared.NewDomainError("INVALID_ITEM", "seller tag set exceeds platform cap")
	}
	return nil
}

// Lifecycle derives the item's current stage from its age.
func (i *Item) Lifecycle(now time.Time, t LifecycleThresholds) Lifecycle {
	return LifecycleFor(i.RegisteredAt, i.LifecycleOverride, now, t)
}

// StageDrifted reports whether the cached stage no longer matches the stage
// derived from the item's age. Drifted items are what the rebalance scheduler
// picks up.
func (i *Item) StageDrifted(now time.Time, t LifecycleThresholds) bool {
	return i.Stage != i.Lifecycle(now, t).Stage
}

package catalog

import "context"

// ItemRepository persists the local item cache. Upsert semantics are keyed by
// product number; concurrent upserts for different items are safe.
type ItemRepository interface {
	Upsert(ctx context.Context, item *Item) error
	FindByProductNo(ctx context.Context, productNo string) (*Item, error)
	FindStageDrifted(ctx context.Context, limit int) ([]Item, error)
	CountUnclassified(ctx context.Context) (int64, error)
	FindUnclassified(ctx context.Context, limit int) ([]Item, error)
}

// SyncAttemptRepository is the append-only audit log. Append never updates an
// existing row and is safe for concurrent writers.
type SyncAttemptRepository interface {
	Append(ctx context.Context, attempt *SyncAttempt) error
	List(ctx context.Context, page, pageSize int) ([]SyncAttempt, int64, error)
}

// VisionSignalRepository persists per-item vision results, one row per item.
type VisionSignalRepository interface {
	Upsert(ctx context.Context, signal *VisionSignal) error
	FindByProductNo(ctx context.Context, productNo string) (*VisionSignal, error)
}

// BrandRepository loads the brand override registry.
type BrandRepository interface {
	LoadRegistry(ctx context.Context) (*BrandRegistry, error)
}

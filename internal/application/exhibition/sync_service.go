// Package exhibition orchestrates synchronization runs: pushing managed
// seller tags and storefront placements for batches of products to the
// commerce platform, with an append-only audit trail and a progress stream
// per run.
package exhibition

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
	"github.com/brownstreet/backend/internal/infrastructure/commerce"
)

// ProductGateway is the slice of the commerce client a sync run needs.
type ProductGateway interface {
	ProductDetail(ctx context.Context, token, productNo string) (*commerce.ProductEnvelope, error)
	UpdateProduct(ctx context.Context, token, productNo string, payload map[string]any) error
}

// TokenProvider hands out a usable gateway access token.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Config tunes a sync run's pacing against the commerce gateway.
type Config struct {
	// BatchSize is how many items are fetched and updated concurrently.
	BatchSize int
	// BatchDelay is the pause between consecutive batches.
	BatchDelay time.Duration
}

// DefaultConfig returns the pacing the gateway's rate limits tolerate.
func DefaultConfig() Config {
	return Config{BatchSize: 5, BatchDelay: 200 * time.Millisecond}
}

// SyncService runs exhibition synchronization against the commerce platform.
type SyncService struct {
	gateway      ProductGateway
	tokens       TokenProvider
	attemptRepo  catalog.SyncAttemptRepository
	itemRepo     catalog.ItemRepository
	displayTable catalog.DisplayCategoryTable
	config       Config
	logger       *zap.Logger
	now          func() time.Time
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	gateway ProductGateway,
	tokens TokenProvider,
	attemptRepo catalog.SyncAttemptRepository,
	itemRepo catalog.ItemRepository,
	displayTable catalog.DisplayCategoryTable,
	config Config,
	logger *zap.Logger,
) *SyncService {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.BatchDelay <= 0 {
		config.BatchDelay = DefaultConfig().BatchDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		gateway:      gateway,
		tokens:       tokens,
		attemptRepo:  attemptRepo,
		itemRepo:     itemRepo,
		displayTable: displayTable,
		config:       config,
		logger:       logger,
		now:          time.Now,
	}
}

// Run validates the request and starts the synchronization in the background.
// The returned channel streams progress events and is closed after the
// terminal complete or error event. Validation failures are returned
// synchronously and start nothing.
func (s *SyncService) Run(ctx context.Context, req SyncRequest) (<-chan Event, error) {
	plan, err := req.resolve(s.displayTable)
	if err != nil {
		return nil, err
	}

	events := make(chan Event, 16)
	go s.run(ctx, req, plan, events)
	return events, nil
}

// emit delivers one event to the run's stream. Once the run context is
// canceled and the buffer is full the event is dropped instead: a consumer
// that disconnected mid-run must not pin the run's goroutines forever.
func emit(ctx context.Context, events chan<- Event, e Event) bool {
	select {
	case events <- e:
		return true
	default:
	}
	select {
	case events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *SyncService) run(ctx context.Context, req SyncRequest, plan syncPlan, events chan<- Event) {
	defer close(events)

	startedAt := s.now()
	total := len(req.ProductNos)
	emit(ctx, events, startEvent(total))

	s.logger.Info("sync run started",
		zap.Int("total", total),
		zap.String("target", plan.target()),
		zap.String("synced_by", req.SyncedBy))

	// One token per run. If the gateway refuses credentials nothing else can
	// succeed, so the run stops here.
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		s.logger.Error("sync run aborted, authentication failed", zap.Error(err))
		emit(ctx, events, errorEvent("authentication failed: "+err.Error()))
		return
	}

	var (
		mu        sync.Mutex
		processed int
		succeeded int
		failed    int
		skipped   int
	)

	for start := 0; start < total; start += s.config.BatchSize {
		if start > 0 {
			select {
			case <-time.After(s.config.BatchDelay):
			case <-ctx.Done():
				emit(ctx, events, errorEvent("run canceled: "+ctx.Err().Error()))
				return
			}
		}

		end := start + s.config.BatchSize
		if end > total {
			end = total
		}

		var wg sync.WaitGroup
		for _, productNo := range req.ProductNos[start:end] {
			wg.Add(1)
			go func(productNo string) {
				defer wg.Done()

				attempt := s.syncOne(ctx, token, productNo, plan, req.SyncedBy)
				if err := s.attemptRepo.Append(ctx, attempt); err != nil {
					s.logger.Error("audit row write failed",
						zap.String("product_no", productNo), zap.Error(err))
				}

				elapsed := s.now().Sub(startedAt).Milliseconds()

				mu.Lock()
				processed++
				switch {
				case attempt.Skipped:
					skipped++
				case attempt.Outcome == catalog.SyncSuccess:
					succeeded++
				default:
					failed++
				}
				progress := Event{
					Type:      EventProgress,
					Total:     total,
					Processed: processed,
					Succeeded: succeeded,
					Failed:    failed,
					Skipped:   skipped,
					ElapsedMS: elapsed,
				}
				mu.Unlock()

				emit(ctx, events, resultEvent(attempt, elapsed))
				emit(ctx, events, progress)
			}(productNo)
		}
		wg.Wait()
	}

	s.logger.Info("sync run finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped))

	emit(ctx, events, Event{
		Type:      EventComplete,
		Total:     total,
		Processed: processed,
		Succeeded: succeeded,
		Failed:    failed,
		Skipped:   skipped,
		ElapsedMS: s.now().Sub(startedAt).Milliseconds(),
	})
}

// syncOne fetches one product, applies the managed tag and storefront
// placement, and writes the record back unless nothing changed. It always
// returns an attempt; failures never propagate past the item.
func (s *SyncService) syncOne(ctx context.Context, token, productNo string, plan syncPlan, syncedBy string) *catalog.SyncAttempt {
	target := plan.target()

	envelope, err := s.gateway.ProductDetail(ctx, token, productNo)
	if err != nil {
		s.logger.Warn("product fetch failed",
			zap.String("product_no", productNo), zap.Error(err))
		return catalog.NewSyncAttempt(productNo, "", target, catalog.SyncFail, false, err.Error(), syncedBy)
	}

	name := envelope.Detail.OriginProduct.Name
	current := envelope.SellerTagTexts()
	next := current
	if plan.tag != "" {
		next = catalog.ApplyManagedTag(current, plan.tag)
	}

	// The skip shortcut only applies to tagged runs. Display ids are
	// write-only upstream, so an ids-only run can never be proven current
	// and always writes.
	if plan.tag != "" && catalog.TagsEqual(current, next) {
		s.updateItemCache(ctx, productNo, name, next, plan)
		return catalog.NewSyncAttempt(productNo, name, target, catalog.SyncSuccess, true, "", syncedBy)
	}

	envelope.SetSellerTags(next)
	envelope.SetDisplayCategoryIDs(plan.displayCategoryIDs)

	if err := s.gateway.UpdateProduct(ctx, token, productNo, envelope.Payload()); err != nil {
		s.logger.Warn("product update failed",
			zap.String("product_no", productNo), zap.Error(err))
		return catalog.NewSyncAttempt(productNo, name, target, catalog.SyncFail, false, err.Error(), syncedBy)
	}

	s.updateItemCache(ctx, productNo, name, next, plan)
	return catalog.NewSyncAttempt(productNo, name, target, catalog.SyncSuccess, false, "", syncedBy)
}

// updateItemCache refreshes the local cache row after a successful sync so
// the next run can skip an unchanged item. Cache failures are logged and
// swallowed; the remote update already happened.
func (s *SyncService) updateItemCache(ctx context.Context, productNo, name string, tags []string, plan syncPlan) {
	item, err := s.itemRepo.FindByProductNo(ctx, productNo)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("item cache read failed",
				zap.String("product_no", productNo), zap.Error(err))
			return
		}
		item = &catalog.Item{ProductNo: productNo, Stage: catalog.StageNew}
	}

	now := s.now()
	item.Name = name
	item.SellerTags = tags
	item.DisplayCategoryIDs = plan.displayCategoryIDs
	if plan.category != "" {
		category := plan.category
		item.ArchiveCategory = &category
	}
	item.SyncedAt = &now
	item.UpdatedAt = now

	if err := s.itemRepo.Upsert(ctx, item); err != nil {
		s.logger.Warn("item cache write failed",
			zap.String("product_no", productNo), zap.Error(err))
	}
}

// Logs returns a page of the audit trail, newest first.
func (s *SyncService) Logs(ctx context.Context, page, pageSize int) (*SyncLogPage, error) {
	attempts, total, err := s.attemptRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return ToSyncLogPage(attempts, total, page, pageSize), nil
}

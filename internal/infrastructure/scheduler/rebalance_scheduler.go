// Package scheduler runs the lifecycle rebalance loop: items whose cached
// stage has drifted from their age are re-exhibited into the stage's bucket.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/application/exhibition"
	"github.com/brownstreet/backend/internal/domain/catalog"
)

// SyncRunner starts one exhibition synchronization run.
type SyncRunner interface {
	Run(ctx context.Context, req exhibition.SyncRequest) (<-chan exhibition.Event, error)
}

// DriftSource lists items whose cached stage no longer matches their age.
type DriftSource interface {
	FindStageDrifted(ctx context.Context, limit int) ([]catalog.Item, error)
}

// RebalanceConfig holds configuration for the rebalance scheduler.
type RebalanceConfig struct {
	Enabled bool
	// CheckInterval is how often drifted items are swept.
	CheckInterval time.Duration
	// JobTimeout bounds one sweep, including its sync runs.
	JobTimeout time.Duration
	// SweepLimit caps how many drifted items one sweep picks up.
	SweepLimit int
}

// DefaultRebalanceConfig returns the default rebalance configuration.
func DefaultRebalanceConfig() RebalanceConfig {
	return RebalanceConfig{
		Enabled:       true,
		CheckInterval: 6 * time.Hour,
		JobTimeout:    30 * time.Minute,
		SweepLimit:    200,
	}
}

// RebalanceScheduler periodically moves stage-drifted items into the bucket
// their age demands.
type RebalanceScheduler struct {
	config     RebalanceConfig
	items      DriftSource
	runner     SyncRunner
	thresholds catalog.LifecycleThresholds
	logger     *zap.Logger
	now        func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewRebalanceScheduler creates a new rebalance scheduler.
func NewRebalanceScheduler(
	config RebalanceConfig,
	items DriftSource,
	runner SyncRunner,
	thresholds catalog.LifecycleThresholds,
	logger *zap.Logger,
) *RebalanceScheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultRebalanceConfig().CheckInterval
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultRebalanceConfig().JobTimeout
	}
	if config.SweepLimit <= 0 {
		config.SweepLimit = DefaultRebalanceConfig().SweepLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RebalanceScheduler{
		config:     config,
		items:      items,
		runner:     runner,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

// Start starts the rebalance loop. It is a no-op when already running or
// disabled by configuration.
func (s *RebalanceScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("rebalance scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("rebalance scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.Int("sweep_limit", s.config.SweepLimit))
	return nil
}

// Stop stops the loop and waits for an in-flight sweep to finish.
func (s *RebalanceScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("rebalance scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RebalanceScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep finds drifted items, groups them by the bucket their age demands,
// and runs one synchronization per bucket. It returns how many items were
// handed to the sync runner.
func (s *RebalanceScheduler) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	drifted, err := s.items.FindStageDrifted(ctx, s.config.SweepLimit)
	if err != nil {
		s.logger.Error("drift query failed", zap.Error(err))
		return 0
	}
	if len(drifted) == 0 {
		return 0
	}

	now := s.now()
	buckets := map[catalog.Category][]string{}
	for i := range drifted {
		stage := drifted[i].Lifecycle(now, s.thresholds).Stage
		buckets[stage.Category()] = append(buckets[stage.Category()], drifted[i].ProductNo)
	}

	var handed int
	for category, productNos := range buckets {
		events, err := s.runner.Run(ctx, exhibition.SyncRequest{
			ProductNos:       productNos,
			InternalCategory: string(category),
			SyncedBy:         "lifecycle-scheduler",
		})
		if err != nil {
			s.logger.Error("rebalance run rejected",
				zap.String("category", string(category)), zap.Error(err))
			continue
		}
		handed += len(productNos)

		for event := range events {
			switch event.Type {
			case exhibition.EventComplete:
				s.logger.Info("rebalance run finished",
					zap.String("category", string(category)),
					zap.Int("succeeded", event.Succeeded),
					zap.Int("failed", event.Failed),
					zap.Int("skipped", event.Skipped))
			case exhibition.EventError:
				s.logger.Error("rebalance run failed",
					zap.String("category", string(category)),
					zap.String("message", event.Message))
			}
		}
	}
	return handed
}

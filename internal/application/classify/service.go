// Package classify coordinates the classification pipeline: rule scoring
// over product text, vision analysis, and the manual brand registry, merged
// into one verdict per item and persisted on the local item cache.
package classify

import (
	"context"
	"errors"
	"time"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/classify"
	"github.com/brownstreet/backend/internal/domain/shared"
)

// VisionAnalyzer submits product images to the vision collaborator and
// returns the resulting signal in completed status.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, productNo, productName string, imageURLs []string) (*catalog.VisionSignal, error)
}

// ClassificationService handles classification-related business operations.
type ClassificationService struct {
	itemRepo   catalog.ItemRepository
	signalRepo catalog.VisionSignalRepository
	brandRepo  catalog.BrandRepository
	analyzer   VisionAnalyzer
	classifier *classify.Classifier
	thresholds catalog.LifecycleThresholds
	now        func() time.Time
	batchDelay time.Duration
}

// NewClassificationService creates a new ClassificationService.
func NewClassificationService(
	itemRepo catalog.ItemRepository,
	signalRepo catalog.VisionSignalRepository,
	brandRepo catalog.BrandRepository,
	analyzer VisionAnalyzer,
	classifier *classify.Classifier,
	thresholds catalog.LifecycleThresholds,
) *ClassificationService {
	return &ClassificationService{
		itemRepo:   itemRepo,
		signalRepo: signalRepo,
		brandRepo:  brandRepo,
		analyzer:   analyzer,
		classifier: classifier,
		thresholds: thresholds,
		now:        time.Now,
		batchDelay: analyzeDelay,
	}
}

// Classify reconciles all available signals for one item and persists the
// verdict on the item cache row.
func (s *ClassificationService) Classify(ctx context.Context, productNo string) (*ClassificationResponse, error) {
	item, err := s.itemRepo.FindByProductNo(ctx, productNo)
	if err != nil {
		return nil, err
	}

	signal, err := s.signalRepo.FindByProductNo(ctx, productNo)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		signal = nil
	}

	registry, err := s.brandRepo.LoadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	rule := s.classifier.Classify(item.Name, item.Brand)

	entry, ok := registry.Lookup(item.Brand)
	if !ok && signal != nil && signal.Status.Trustworthy() && signal.Brand != "" {
		entry, _ = registry.Lookup(signal.Brand)
	}

	merged := classify.Merge(rule, item.Brand, signal, entry)

	now := s.now()
	item.ArchiveCategory = merged.Category
	item.ClassifiedAt = &now
	item.Stage = item.Lifecycle(now, s.thresholds).Stage
	item.UpdatedAt = now

	if err := s.itemRepo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	return ToClassificationResponse(item, merged), nil
}

// ClassifyPending sweeps items that have never been classified, oldest
// registration first. A failure on one item does not stop the sweep.
func (s *ClassificationService) ClassifyPending(ctx context.Context, limit int) (*BatchClassifyResponse, error) {
	items, err := s.itemRepo.FindUnclassified(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &BatchClassifyResponse{}
	for i := range items {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		resp, err := s.Classify(ctx, items[i].ProductNo)
		result.Processed++
		switch {
		case err != nil:
			result.Failed++
		case resp.Category != nil:
			result.Matched++
		default:
			result.Unmatched++
		}
	}
	return result, nil
}

// CountUnclassified reports how many cached items still await classification.
func (s *ClassificationService) CountUnclassified(ctx context.Context) (int64, error) {
	return s.itemRepo.CountUnclassified(ctx)
}

// Analyze submits one product's images to the vision collaborator and stores
// the resulting signal. An analyzer failure is recorded as a failed signal
// unless a trustworthy one already exists for the item.
func (s *ClassificationService) Analyze(ctx context.Context, req AnalyzeProductRequest) (*VisionSignalResponse, error) {
	if req.ProductNo == "" {
		return nil, shared.NewDomainError("INVALID_REQUEST", "product number is required")
	}

	existing, err := s.signalRepo.FindByProductNo(ctx, req.ProductNo)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		existing = nil
	}

	if existing == nil {
		pending := &catalog.VisionSignal{
			ProductNo: req.ProductNo,
			Status:    catalog.VisionPending,
			UpdatedAt: s.now(),
		}
		if err := s.signalRepo.Upsert(ctx, pending); err != nil {
			return nil, err
		}
	}

	signal, err := s.analyzer.Analyze(ctx, req.ProductNo, req.ProductName, req.ImageURLs)
	if err != nil {
		if existing == nil || !existing.Status.Trustworthy() {
			failed := &catalog.VisionSignal{
				ProductNo: req.ProductNo,
				Status:    catalog.VisionFailed,
				Error:     err.Error(),
				UpdatedAt: s.now(),
			}
			if storeErr := s.signalRepo.Upsert(ctx, failed); storeErr != nil {
				return nil, storeErr
			}
		}
		return nil, err
	}

	if err := s.signalRepo.Upsert(ctx, signal); err != nil {
		return nil, err
	}
	return ToVisionSignalResponse(signal), nil
}

// analyzeDelay paces batch submissions. The analyzer runs a vision model
// with latency in the seconds; hammering it buys nothing.
const analyzeDelay = 1 * time.Second

// AnalyzeBatch submits a list of products for analysis, strictly in order
// with a fixed delay between submissions. One failure does not stop the
// batch; cancellation stops further submissions.
func (s *ClassificationService) AnalyzeBatch(ctx context.Context, req BatchAnalyzeRequest) (*BatchAnalyzeResponse, error) {
	if len(req.Products) == 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "at least one product is required")
	}

	result := &BatchAnalyzeResponse{Submitted: len(req.Products)}
	for i, product := range req.Products {
		if i > 0 && s.batchDelay > 0 {
			select {
			case <-time.After(s.batchDelay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
		if _, err := s.Analyze(ctx, product); err != nil {
			result.Failed++
			continue
		}
		result.Completed++
	}
	return result, nil
}

// RecordManual stores an operator-entered signal for one product. Manual
// signals override analyzer output and are never replaced by re-analysis.
func (s *ClassificationService) RecordManual(ctx context.Context, req ManualSignalRequest) (*VisionSignalResponse, error) {
	if req.ProductNo == "" {
		return nil, shared.NewDomainError("INVALID_REQUEST", "product number is required")
	}

	signal, err := s.signalRepo.FindByProductNo(ctx, req.ProductNo)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		signal = &catalog.VisionSignal{ProductNo: req.ProductNo, Status: catalog.VisionPending}
	}

	if err := signal.Transition(catalog.VisionManual); err != nil {
		return nil, err
	}

	signal.Brand = req.Brand
	signal.GarmentType = req.GarmentType
	signal.GarmentSub = req.GarmentSub
	signal.Gender = req.Gender
	signal.Grade = req.Grade
	signal.GradeReason = req.GradeReason
	signal.Colors = req.Colors
	signal.Pattern = req.Pattern
	signal.Fabric = req.Fabric
	signal.Size = req.Size
	signal.Confidence = req.Confidence
	signal.Error = ""
	signal.UpdatedAt = s.now()

	if err := s.signalRepo.Upsert(ctx, signal); err != nil {
		return nil, err
	}
	return ToVisionSignalResponse(signal), nil
}

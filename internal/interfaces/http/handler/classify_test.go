package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classifyapp "github.com/brownstreet/backend/internal/application/classify"
	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/classify"
	"github.com/brownstreet/backend/internal/domain/shared"
)

type stubSignalRepo struct {
	signals map[string]*catalog.VisionSignal
}

func (r *stubSignalRepo) Upsert(_ context.Context, signal *catalog.VisionSignal) error {
	if r.signals == nil {
		r.signals = map[string]*catalog.VisionSignal{}
	}
	copied := *signal
	r.signals[signal.ProductNo] = &copied
	return nil
}

func (r *stubSignalRepo) FindByProductNo(_ context.Context, productNo string) (*catalog.VisionSignal, error) {
	signal, ok := r.signals[productNo]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *signal
	return &copied, nil
}

type stubBrandRepo struct{}

func (stubBrandRepo) LoadRegistry(context.Context) (*catalog.BrandRegistry, error) {
	return catalog.NewBrandRegistry(nil), nil
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, productNo, _ string, _ []string) (*catalog.VisionSignal, error) {
	return &catalog.VisionSignal{
		ProductNo:  productNo,
		Brand:      "Carhartt",
		Confidence: 90,
		Status:     catalog.VisionCompleted,
		UpdatedAt:  time.Now(),
	}, nil
}

func newClassifyEngine(t *testing.T, items *stubItemRepo) *gin.Engine {
	t.Helper()
	svc := classifyapp.NewClassificationService(items, &stubSignalRepo{}, stubBrandRepo{},
		stubAnalyzer{}, classify.NewClassifier(classify.DefaultRuleSet()),
		catalog.DefaultLifecycleThresholds())

	h := NewClassifyHandler(svc)
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.POST("/classify/items/:productNo", h.Classify)
	api.GET("/classify/unclassified/count", h.UnclassifiedCount)
	api.POST("/vision/analyze", h.Analyze)
	api.POST("/vision/manual", h.RecordManual)
	return engine
}

func TestClassifyHandler_Classify(t *testing.T) {
	items := &stubItemRepo{}
	require.NoError(t, items.Upsert(context.Background(), &catalog.Item{
		ProductNo:    "1001",
		Name:         "CARHARTT DOUBLE KNEE WORK PANTS",
		Brand:        "CARHARTT",
		RegisteredAt: time.Now().AddDate(0, 0, -5),
		Stage:        catalog.StageNew,
	}))
	engine := newClassifyEngine(t, items)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify/items/1001", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data classifyapp.ClassificationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Category)
	assert.Equal(t, "WORKWEAR_ARCHIVE", *resp.Data.Category)
}

func TestClassifyHandler_ClassifyMissingItem(t *testing.T) {
	engine := newClassifyEngine(t, &stubItemRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify/items/9999", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassifyHandler_Analyze(t *testing.T) {
	engine := newClassifyEngine(t, &stubItemRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/analyze",
		strings.NewReader(`{"product_no":"1001","image_urls":["https://img.example.com/1.jpg"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestClassifyHandler_AnalyzeRequiresImages(t *testing.T) {
	engine := newClassifyEngine(t, &stubItemRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/analyze",
		strings.NewReader(`{"product_no":"1001"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyHandler_RecordManual(t *testing.T) {
	engine := newClassifyEngine(t, &stubItemRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vision/manual",
		strings.NewReader(`{"product_no":"1001","brand":"Gloverall","confidence":95}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"manual"`)
}

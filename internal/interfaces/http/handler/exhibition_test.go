package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brownstreet/backend/internal/application/exhibition"
	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
	"github.com/brownstreet/backend/internal/infrastructure/auth"
	"github.com/brownstreet/backend/internal/infrastructure/cache"
	"github.com/brownstreet/backend/internal/infrastructure/commerce"
	"github.com/brownstreet/backend/internal/infrastructure/config"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAttemptRepo struct {
	mu   sync.Mutex
	rows []catalog.SyncAttempt
}

func (r *stubAttemptRepo) Append(_ context.Context, attempt *catalog.SyncAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *attempt)
	return nil
}

func (r *stubAttemptRepo) List(_ context.Context, page, pageSize int) ([]catalog.SyncAttempt, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]catalog.SyncAttempt(nil), r.rows...), int64(len(r.rows)), nil
}

type stubItemRepo struct {
	mu    sync.Mutex
	items map[string]*catalog.Item
}

func (r *stubItemRepo) Upsert(_ context.Context, item *catalog.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = map[string]*catalog.Item{}
	}
	copied := *item
	r.items[item.ProductNo] = &copied
	return nil
}

func (r *stubItemRepo) FindByProductNo(_ context.Context, productNo string) (*catalog.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[productNo]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *stubItemRepo) FindStageDrifted(context.Context, int) ([]catalog.Item, error) {
	return nil, nil
}

func (r *stubItemRepo) CountUnclassified(context.Context) (int64, error) { return 0, nil }

func (r *stubItemRepo) FindUnclassified(context.Context, int) ([]catalog.Item, error) {
	return nil, nil
}

// newSyncFixture builds a commerce fake upstream, a real sync service over
// it, and a gin engine with the exhibition routes behind JWT auth.
func newSyncFixture(t *testing.T) (*gin.Engine, *auth.JWTService, *stubAttemptRepo) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/oauth2/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-1", "expires_in": 3600, "token_type": "Bearer",
			})
		case strings.HasPrefix(r.URL.Path, "/v2/products/origin-products/"):
			if r.Method == http.MethodPut {
				w.WriteHeader(http.StatusOK)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"originProduct": map[string]any{
					"name": "US ARMY M-65 FIELD JACKET",
					"detailAttribute": map[string]any{
						"seoInfo": map[string]any{
							"sellerTags": []any{map[string]any{"text": "빈티지"}},
						},
					},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	client, err := commerce.NewClient(&commerce.CommerceConfig{
		ClientID:     "client-1",
		ClientSecret: "$2a$04$abcdefghijklmnopqrstuv",
		APIBaseURL:   upstream.URL,
		GatewayKey:   "gw-key",
	})
	require.NoError(t, err)

	tokens := cache.NewTokenSource(client, cache.NewInMemoryCredentialStore(), nil)
	attempts := &stubAttemptRepo{}
	svc := exhibition.NewSyncService(client, tokens, attempts, &stubItemRepo{},
		catalog.DisplayCategoryTable{catalog.CategoryMilitary: "20001"},
		exhibition.Config{BatchSize: 5, BatchDelay: time.Millisecond}, nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters",
		Issuer:                "brownstreet-test",
		AccessTokenExpiration: time.Hour,
	})

	exhibitionHandler := NewExhibitionHandler(svc)
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService))
	api.POST("/exhibition/sync", exhibitionHandler.Sync)
	api.GET("/exhibition/logs", exhibitionHandler.Logs)

	return engine, jwtService, attempts
}

func bearerFor(t *testing.T, jwtService *auth.JWTService, operator string) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(operator)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestExhibitionHandler_SyncStreamsEvents(t *testing.T) {
	engine, jwtService, attempts := newSyncFixture(t)

	body := `{"product_nos":["101"],"internal_category":"MILITARY_ARCHIVE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibition/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, jwtService, "operator@brownstreet"))
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	var events []exhibition.Event
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event exhibition.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		events = append(events, event)
	}
	require.NotEmpty(t, events)
	assert.Equal(t, exhibition.EventStart, events[0].Type)
	final := events[len(events)-1]
	assert.Equal(t, exhibition.EventComplete, final.Type)
	assert.Equal(t, 1, final.Succeeded)

	// The authenticated operator ends up on the audit row.
	require.Len(t, attempts.rows, 1)
	assert.Equal(t, "operator@brownstreet", attempts.rows[0].SyncedBy)
}

func TestExhibitionHandler_SyncRejectsUnknownCategory(t *testing.T) {
	engine, jwtService, _ := newSyncFixture(t)

	body := `{"product_nos":["101"],"internal_category":"STREETWEAR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibition/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, jwtService, "operator"))
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CATEGORY")
}

func TestExhibitionHandler_SyncRequiresAuth(t *testing.T) {
	engine, _, _ := newSyncFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibition/sync",
		strings.NewReader(`{"product_nos":["101"],"internal_category":"MILITARY_ARCHIVE"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExhibitionHandler_Logs(t *testing.T) {
	engine, jwtService, attempts := newSyncFixture(t)
	require.NoError(t, attempts.Append(context.Background(),
		catalog.NewSyncAttempt("101", "US ARMY M-65", "MILITARY_ARCHIVE", catalog.SyncSuccess, false, "", "operator")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exhibition/logs?page=1&page_size=20", nil)
	req.Header.Set("Authorization", bearerFor(t, jwtService, "operator"))
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			ProductNo string `json:"product_no"`
			Outcome   string `json:"outcome"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "101", resp.Data[0].ProductNo)
	assert.Equal(t, "SUCCESS", resp.Data[0].Outcome)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

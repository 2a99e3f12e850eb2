package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brownstreet/backend/internal/domain/catalog"
)

// maxResponseSize is the maximum allowed response size from the analyzer (10MB)
const maxResponseSize = 10 * 1024 * 1024

// maxInFlight bounds concurrent analyses. The analyzer runs a vision model
// per call and degrades badly when flooded, so the client applies its own
// backpressure instead of trusting callers to pace themselves.
const maxInFlight = 2

// ErrAnalyzerUnavailable indicates the analyzer rejected or failed the call
var ErrAnalyzerUnavailable = errors.New("vision: analyzer unavailable")

// Config holds the analyzer endpoint settings
type Config struct {
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
}

// Validate validates the analyzer configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("vision: base url is required")
	}
	if c.TimeoutSeconds <= 0 {
		// Vision inference is slow; the default stays generous.
		c.TimeoutSeconds = 120
	}
	return nil
}

// analyzeRequest is the analyzer's wire format for one analysis job
type analyzeRequest struct {
	ProductNo   string   `json:"product_no"`
	ProductName string   `json:"product_name,omitempty"`
	ImageURLs   []string `json:"image_urls"`
}

// analyzeResponse mirrors the analyzer's wire format
type analyzeResponse struct {
	Brand       string   `json:"brand"`
	GarmentType string   `json:"garment_type"`
	GarmentSub  string   `json:"garment_sub"`
	Gender      string   `json:"gender"`
	Grade       string   `json:"grade"`
	GradeReason string   `json:"grade_reason"`
	Colors      []string `json:"colors"`
	Pattern     string   `json:"pattern"`
	Fabric      string   `json:"fabric"`
	Size        string   `json:"size"`
	Confidence  int      `json:"confidence"`
}

// Client calls the vision collaborator over HTTP
type Client struct {
	config     *Config
	httpClient *http.Client
	inFlight   chan struct{}
	now        func() time.Time
}

// NewClient creates a vision client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		inFlight: make(chan struct{}, maxInFlight),
		now:      time.Now,
	}, nil
}

// Analyze submits one product's images for analysis and returns the signal
// in completed status. The call blocks while the in-flight slot and the
// analyzer itself are busy; cancellation is honored at both points.
func (c *Client) Analyze(ctx context.Context, productNo, productName string, imageURLs []string) (*catalog.VisionSignal, error) {
	if productNo == "" {
		return nil, errors.New("vision: product number is required")
	}

	select {
	case c.inFlight <- struct{}{}:
		defer func() { <-c.inFlight }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	payload, err := json.Marshal(analyzeRequest{
		ProductNo:   productNo,
		ProductName: productName,
		ImageURLs:   imageURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("vision: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("X-API-Key", c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrAnalyzerUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAnalyzerUnavailable, resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAnalyzerUnavailable, err)
	}

	return &catalog.VisionSignal{
		ProductNo:   productNo,
		Brand:       result.Brand,
		GarmentType: result.GarmentType,
		GarmentSub:  result.GarmentSub,
		Gender:      result.Gender,
		Grade:       result.Grade,
		GradeReason: result.GradeReason,
		Colors:      result.Colors,
		Pattern:     result.Pattern,
		Fabric:      result.Fabric,
		Size:        result.Size,
		Confidence:  result.Confidence,
		Status:      catalog.VisionCompleted,
		UpdatedAt:   c.now(),
	}, nil
}

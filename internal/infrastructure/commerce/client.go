package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxResponseSize is the maximum allowed response size from the gateway (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	tokenPath       = "/v1/oauth2/token"
	productPathBase = "/v2/products/origin-products/"

	// GatewayKeyHeader is the static proxy key header the gateway requires
	GatewayKeyHeader = "X-Gateway-Key"
)

// ErrAuthFailed indicates the token endpoint rejected the credentials.
// Authentication failure is fatal for a whole run, never retried per item.
var ErrAuthFailed = errors.New("commerce: authentication failed")

// ErrInvalidProductNo indicates a product number that is not numeric
var ErrInvalidProductNo = errors.New("commerce: invalid product number")

// UpstreamError is a non-2xx response from the gateway, passed through
// verbatim. The caller decides what to do with the status and body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("commerce: upstream status %d: %s", e.Status, e.Body)
}

// Client talks to the commerce gateway. It signs token requests, forwards
// the static gateway key on every call, and never retries.
type Client struct {
	config     *CommerceConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a gateway client with the given configuration
func NewClient(config *CommerceConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// validateProductNo validates that a product number is a numeric id
func validateProductNo(no string) error {
	if no == "" {
		return ErrInvalidProductNo
	}
	if _, err := strconv.ParseInt(no, 10, 64); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProductNo, no)
	}
	return nil
}

// Token exchanges the signed credentials for a bearer token. Any failure
// maps to ErrAuthFailed with the upstream status and body attached.
func (c *Client) Token(ctx context.Context) (*BearerCredential, error) {
	timestamp := c.now().UnixMilli()
	sign, err := c.config.Sign(timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	form := url.Values{}
	form.Set("client_id", c.config.ClientID)
	form.Set("timestamp", strconv.FormatInt(timestamp, 10))
	form.Set("client_secret_sign", sign)
	form.Set("grant_type", "client_credentials")
	form.Set("type", "SELF")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIBaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.config.GatewayKey != "" {
		req.Header.Set(GatewayKeyHeader, c.config.GatewayKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrAuthFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAuthFailed, resp.StatusCode, string(body))
	}

	var cred BearerCredential
	if err := json.Unmarshal(body, &cred); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAuthFailed, err)
	}
	if cred.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrAuthFailed)
	}
	return &cred, nil
}

// Do performs one authenticated request against the gateway. The status and
// body pass through verbatim on 2xx; anything else returns a typed
// *UpstreamError alongside them. No retries.
func (c *Client) Do(ctx context.Context, token, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("commerce: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIBaseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.config.GatewayKey != "" {
		req.Header.Set(GatewayKeyHeader, c.config.GatewayKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("commerce: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, body, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return resp.StatusCode, body, nil
}

// ProductDetail fetches the full listing document for one product.
func (c *Client) ProductDetail(ctx context.Context, token, productNo string) (*ProductEnvelope, error) {
	if err := validateProductNo(productNo); err != nil {
		return nil, err
	}
	_, body, err := c.Do(ctx, token, http.MethodGet, productPathBase+productNo, nil)
	if err != nil {
		return nil, err
	}
	return newProductEnvelope(body)
}

// UpdateProduct replaces the full listing document for one product.
func (c *Client) UpdateProduct(ctx context.Context, token, productNo string, payload map[string]any) error {
	if err := validateProductNo(productNo); err != nil {
		return err
	}
	_, _, err := c.Do(ctx, token, http.MethodPut, productPathBase+productNo, payload)
	return err
}

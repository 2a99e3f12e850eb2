package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brownstreet/backend/internal/infrastructure/cache"
	"github.com/brownstreet/backend/internal/infrastructure/commerce"
	"github.com/brownstreet/backend/internal/interfaces/http/dto"
)

// maxProxyBodySize caps proxied request bodies (1MB)
const maxProxyBodySize = 1 << 20

// GatewayHandler proxies ad-hoc calls to the commerce gateway, attaching the
// bearer token and the static gateway key so operator tooling never holds
// platform credentials.
type GatewayHandler struct {
	BaseHandler
	client *commerce.Client
	tokens *cache.TokenSource
}

// NewGatewayHandler creates a new GatewayHandler
func NewGatewayHandler(client *commerce.Client, tokens *cache.TokenSource) *GatewayHandler {
	return &GatewayHandler{client: client, tokens: tokens}
}

// Token handles POST /api/v1/gateway/token, returning the cached bearer
// token for callers that talk to the platform directly.
func (h *GatewayHandler) Token(c *gin.Context) {
	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamAuth, err.Error())
		return
	}
	h.Success(c, gin.H{"access_token": token, "token_type": "Bearer"})
}

// Proxy handles ANY /api/v1/gateway/*path, forwarding the method, path, and
// JSON body upstream and passing the upstream's status and body back.
func (h *GatewayHandler) Proxy(c *gin.Context) {
	path := c.Param("path")
	if path == "" || path == "/" {
		h.BadRequest(c, "upstream path is required")
		return
	}
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}

	var payload any
	if c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBodySize))
		if err != nil {
			h.BadRequest(c, "unreadable request body")
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "request body must be JSON")
				return
			}
		}
	}

	token, err := h.tokens.AccessToken(c.Request.Context())
	if err != nil {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamAuth, err.Error())
		return
	}

	status, body, err := h.client.Do(c.Request.Context(), token, c.Request.Method, path, payload)
	if err != nil {
		var upstreamErr *commerce.UpstreamError
		if errors.As(err, &upstreamErr) {
			c.Data(upstreamErr.Status, "application/json", []byte(upstreamErr.Body))
			return
		}
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, err.Error())
		return
	}
	c.Data(status, "application/json", body)
}

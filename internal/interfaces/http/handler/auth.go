package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brownstreet/backend/internal/infrastructure/auth"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
)

// AuthHandler issues operator tokens. This is an internal ops tool; the only
// credential is the shared gateway key, and the operator name is what ends
// up on the audit trail.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	gatewayKey string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService, gatewayKey string) *AuthHandler {
	return &AuthHandler{jwtService: jwtService, gatewayKey: gatewayKey}
}

// TokenRequest is the body of POST /api/v1/auth/token
type TokenRequest struct {
	Operator   string `json:"operator" binding:"required,min=1,max=100"`
	GatewayKey string `json:"gateway_key" binding:"required"`
}

// TokenResponse carries an issued operator token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return
	}

	if h.gatewayKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.GatewayKey), []byte(h.gatewayKey)) != 1 {
		h.Unauthorized(c, "invalid gateway key")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.Operator)
	if err != nil {
		h.Internal(c, err.Error())
		return
	}

	h.Success(c, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/infrastructure/auth"
	"github.com/brownstreet/backend/internal/infrastructure/logger"
	"github.com/brownstreet/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTOperatorKey = "jwt_operator"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns default JWT middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/health",
		},
	}
}

// JWTAuthMiddleware creates operator authentication middleware
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig creates operator authentication middleware
// with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, "missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, "invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, "missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithCode(c, cfg, dto.ErrCodeTokenExpired, "token has expired")
				return
			}
			abortUnauthorized(c, cfg, "invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTOperatorKey, claims.Subject)
		ctx, _ := logger.WithActorID(c.Request.Context(), logger.GetGinLogger(c), claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetJWTOperator returns the authenticated operator, or empty when the
// request was not authenticated.
func GetJWTOperator(c *gin.Context) string {
	return c.GetString(JWTOperatorKey)
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, message string) {
	abortWithCode(c, cfg, dto.ErrCodeUnauthorized, message)
}

func abortWithCode(c *gin.Context, cfg JWTMiddlewareConfig, code, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Debug("request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", message))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

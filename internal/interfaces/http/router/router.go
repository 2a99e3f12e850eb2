// Package router assembles the gin engine: middleware chain plus every
// route group.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brownstreet/backend/internal/infrastructure/auth"
	"github.com/brownstreet/backend/internal/infrastructure/logger"
	"github.com/brownstreet/backend/internal/interfaces/http/handler"
	"github.com/brownstreet/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router wires together.
type Dependencies struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	CORS        middleware.CORSConfig
	MaxBodySize int64

	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Exhibition *handler.ExhibitionHandler
	Classify   *handler.ClassifyHandler
	Gateway    *handler.GatewayHandler
}

// New builds the gin engine with the full middleware chain and route table.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.CORSWithConfig(deps.CORS))
	if deps.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.MaxBodySize))
	}

	engine.GET("/health", deps.Health.Health)
	engine.GET("/healthz", deps.Health.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", deps.Health.Health)
	api.POST("/auth/token", deps.Auth.Token)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(deps.JWTService))

	exhibition := protected.Group("/exhibition")
	{
		exhibition.POST("/sync", deps.Exhibition.Sync)
		exhibition.GET("/logs", deps.Exhibition.Logs)
	}

	classify := protected.Group("/classify")
	{
		classify.POST("/pending", deps.Classify.ClassifyPending)
		classify.GET("/unclassified/count", deps.Classify.UnclassifiedCount)
		classify.POST("/items/:productNo", deps.Classify.Classify)
	}

	vision := protected.Group("/vision")
	{
		vision.POST("/analyze", deps.Classify.Analyze)
		vision.POST("/analyze/batch", deps.Classify.AnalyzeBatch)
		vision.POST("/manual", deps.Classify.RecordManual)
	}

	gateway := protected.Group("/gateway")
	{
		gateway.POST("/token", deps.Gateway.Token)
		gateway.Any("/proxy/*path", deps.Gateway.Proxy)
	}

	return engine
}

package app

import (
	"molliepay/pkg/logger"
	"molliepay/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// NewGinEngine builds the engine with recovery, correlation ids,
// request logging and HTTP metrics.
func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.CorrelationMiddleware(),
		logger.RequestLogger(),
		metrics.GinMiddleware(),
	)
	return engine
}

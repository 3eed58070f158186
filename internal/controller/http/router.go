// Package http wires the gin routes.
package http

import (
	"time"

	"molliepay/internal/controller/http/handlers"
	"molliepay/pkg/health"
	"molliepay/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	payment  handlers.PaymentHandler
	callback handlers.CallbackHandler
	health   *health.Registry
}

func NewRouter(payment handlers.PaymentHandler, callback handlers.CallbackHandler, healthReg *health.Registry) *Router {
	return &Router{
		payment:  payment,
		callback: callback,
		health:   healthReg,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.health, 5*time.Second))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")

	// Host-facing payment operations.
	api.POST("/payments", r.payment.Start)
	api.GET("/payments/:order_number", r.payment.Get)
	api.POST("/payments/:order_number/refresh", r.payment.Refresh)
	api.POST("/payments/:order_number/cancel", r.payment.Cancel)
	api.POST("/payments/:order_number/refund", r.payment.Refund)
	api.POST("/payments/:order_number/capture", r.payment.Capture)
	api.GET("/payments/:order_number/events", r.payment.GetEvents)

	// Public Mollie callback: webhook POST and browser-return GET share
	// the endpoint, split by the redirect query marker.
	api.POST("/payments/:order_number/callback", r.callback.Callback)
	api.GET("/payments/:order_number/callback", r.callback.Callback)
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-registry/internal/middleware"
)

// Handler mounts read routes on public and write routes on protected.
type Handler interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

type RouterConfig struct {
	RateLimit    rate.Limit
	RateBurst    int
	MaxBodyBytes int64
	MetricsPath  string
	Idempotency  middleware.IdempotencyConfig

	// TrustedProxies are the only peers whose X-Forwarded-For is believed.
	TrustedProxies []string
}

type Router struct {
	engine   *gin.Engine
	logger   zerolog.Logger
	auth     *middleware.AuthMiddleware
	h        *handler.Handler
	metrics  *prometheus.Handler
	handlers []Handler
	config   RouterConfig
}

// NewRouter builds the engine and its global middleware. auth and metrics
// may be nil to leave writes open and metrics unserved.
func NewRouter(
	logger zerolog.Logger,
	auth *middleware.AuthMiddleware,
	h *handler.Handler,
	metrics *prometheus.Handler,
	config RouterConfig,
	handlers ...Handler,
) *Router {
	engine := gin.New()
	middleware.UseJSONFieldNames()
	if err := engine.SetTrustedProxies(config.TrustedProxies); err != nil {
		logger.Error().Err(err).Strs("trusted_proxies", config.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = engine.SetTrustedProxies(nil)
	}

	r := &Router{
		engine:   engine,
		logger:   logger,
		auth:     auth,
		h:        h,
		metrics:  metrics,
		handlers: handlers,
		config:   config,
	}

	engine.Use(
		middleware.RequestID(logger),
		middleware.Recovery(),
		middleware.Logger(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(middleware.ErrorHandler())

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	if r.metrics != nil {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, r.metrics.Handler())
	}

	api := r.engine.Group("/api/v1")
	r.setupHealthCheck(api)

	public := api.Group("", middleware.NoStore())

	protected := api.Group("", middleware.NoStore(), middleware.SizeLimit(r.config.MaxBodyBytes))
	if r.auth != nil {
		protected.Use(r.auth.Authenticate())
	}
	protected.Use(middleware.NewIdempotency(r.config.Idempotency).Middleware())

	for _, h := range r.handlers {
		h.RegisterRoutes(public, protected)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

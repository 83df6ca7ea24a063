package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"richli-site/internal/config"
	"richli-site/internal/middleware"
	"richli-site/internal/monitoring"
)

// Chain wraps the router in the middleware stack, outermost first:
// HTTPS redirect, security headers, CORS, request logging, rate limit, gzip.
// ips must be the same resolver the limiter keys on.
func Chain(cfg *config.Config, router *mux.Router, limiter *middleware.RateLimiter, ips *middleware.ClientIP, log *zap.Logger, metrics *monitoring.Metrics) nethttp.Handler {
	var h nethttp.Handler = router
	h = middleware.GzipCompression(h)
	h = limiter.Middleware(h)
	h = middleware.NewRequestLogger(log, metrics, router, ips).Handler(h)
	h = middleware.CORS(cfg.CORS.AllowedOrigins)(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.HTTPSRedirect(cfg.Security.ForceHTTPS)(h)
	return h
}

// NewServer builds the http.Server with the configured timeouts
func NewServer(cfg *config.Config, handler nethttp.Handler, log *zap.Logger) *nethttp.Server {
	return &nethttp.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log),
	}
}

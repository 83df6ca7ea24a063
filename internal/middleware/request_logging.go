package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"richli-site/internal/monitoring"
)

// RequestLogger logs every request through zap and records it in the prometheus metrics
type RequestLogger struct {
	log     *zap.Logger
	metrics *monitoring.Metrics
	router  *mux.Router
	ips     *ClientIP
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	wroteHeader  bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// NewRequestLogger creates the logging middleware. router is used to label
// metrics by route template instead of raw path.
func NewRequestLogger(log *zap.Logger, metrics *monitoring.Metrics, router *mux.Router, ips *ClientIP) *RequestLogger {
	return &RequestLogger{log: log, metrics: metrics, router: router, ips: ips}
}

// Handler returns the middleware handler
func (m *RequestLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		m.metrics.ObserveRequest(r.Method, m.route(r), wrapped.statusCode, duration)

		if shouldSkipLogging(r.URL.Path) {
			return
		}
		m.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", sanitizePath(r.URL.Path)),
			zap.Int("status", wrapped.statusCode),
			zap.Int("bytes", wrapped.bytesWritten),
			zap.Duration("duration", duration),
			zap.String("client_ip", m.ips.From(r)),
		)
	})
}

// route returns the matched route template, keeping metric label cardinality bounded
func (m *RequestLogger) route(r *http.Request) string {
	if m.router == nil {
		return "unmatched"
	}
	var match mux.RouteMatch
	if !m.router.Match(r, &match) || match.Route == nil || match.MatchErr != nil {
		return "unmatched"
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}

// shouldSkipLogging returns true for paths that shouldn't be logged
func shouldSkipLogging(path string) bool {
	skipPaths := []string{
		"/static/",
		"/health",
		"/metrics",
		"/favicon.ico",
		"/robots.txt",
	}

	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}

	return false
}

// sanitizePath truncates very long paths
func sanitizePath(path string) string {
	if len(path) > 500 {
		path = path[:500]
	}
	return path
}

package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"go.uber.org/zap"

	"richli-site/internal/monitoring"
	"richli-site/internal/views"
)

const pageCacheControl = "public, max-age=3600"

// PageHandler serves the rendered HTML pages
type PageHandler struct {
	metrics *monitoring.Metrics
	log     *zap.Logger

	impressum     []byte
	impressumETag string
}

// NewPageHandler renders the static pages once; they never change at runtime
func NewPageHandler(metrics *monitoring.Metrics, log *zap.Logger) *PageHandler {
	doc := views.ImpressumDocument()
	return &PageHandler{
		metrics:       metrics,
		log:           log,
		impressum:     doc,
		impressumETag: etag(doc),
	}
}

func etag(b []byte) string {
	sum := sha256.Sum256(b)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// Impressum serves the legal notice page. Conditional and HEAD requests are
// handled by http.ServeContent using the precomputed ETag.
func (h *PageHandler) Impressum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", pageCacheControl)
	w.Header().Set("ETag", h.impressumETag)

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	http.ServeContent(sw, r, "", time.Time{}, bytes.NewReader(h.impressum))

	// Only full page bodies count as views
	if r.Method == http.MethodGet && sw.status == http.StatusOK {
		h.metrics.PageView("impressum")
	}
}

// statusWriter records the status code a handler replied with
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Home redirects the site root to the legal notice
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, views.ImpressumPath, http.StatusFound)
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	body, err := views.NotFound(r.URL.Path)
	if err != nil {
		h.log.Error("render not found page", zap.Error(err))
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNotFound)
	w.Write(body)
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"richli-site/internal/monitoring"
	"richli-site/internal/views"
)

func newTestPageHandler(t *testing.T) (*PageHandler, *monitoring.Metrics) {
	t.Helper()
	metrics := monitoring.NewMetrics()
	return NewPageHandler(metrics, zap.NewNop()), metrics
}

func TestPageHandler_Impressum(t *testing.T) {
	h, _ := newTestPageHandler(t)

	rec := httptest.NewRecorder()
	h.Impressum(rec, httptest.NewRequest(http.MethodGet, "/impressum", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, pageCacheControl, rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Equal(t, views.ImpressumDocument(), rec.Body.Bytes())
}

func TestPageHandler_ImpressumStableETag(t *testing.T) {
	a, _ := newTestPageHandler(t)
	b, _ := newTestPageHandler(t)

	assert.Equal(t, a.impressumETag, b.impressumETag)
}

func TestPageHandler_ImpressumNotModified(t *testing.T) {
	h, _ := newTestPageHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/impressum", nil)
	req.Header.Set("If-None-Match", h.impressumETag)

	rec := httptest.NewRecorder()
	h.Impressum(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestPageHandler_ImpressumHead(t *testing.T) {
	h, _ := newTestPageHandler(t)

	rec := httptest.NewRecorder()
	h.Impressum(rec, httptest.NewRequest(http.MethodHead, "/impressum", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestPageHandler_ImpressumCountsViews(t *testing.T) {
	h, metrics := newTestPageHandler(t)

	for i := 0; i < 3; i++ {
		h.Impressum(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/impressum", nil))
	}

	body := scrape(t, metrics)
	assert.Contains(t, body, `site_page_views_total{page="impressum"} 3`)
}

func TestPageHandler_ImpressumSkipsNonViews(t *testing.T) {
	h, metrics := newTestPageHandler(t)

	h.Impressum(httptest.NewRecorder(), httptest.NewRequest(http.MethodHead, "/impressum", nil))

	conditional := httptest.NewRequest(http.MethodGet, "/impressum", nil)
	conditional.Header.Set("If-None-Match", h.impressumETag)
	h.Impressum(httptest.NewRecorder(), conditional)

	partial := httptest.NewRequest(http.MethodGet, "/impressum", nil)
	partial.Header.Set("Range", "bytes=0-9")
	rec := httptest.NewRecorder()
	h.Impressum(rec, partial)
	require.Equal(t, http.StatusPartialContent, rec.Code)

	assert.NotContains(t, scrape(t, metrics), `site_page_views_total{page="impressum"}`)
}

func TestPageHandler_Home(t *testing.T) {
	h, _ := newTestPageHandler(t)

	rec := httptest.NewRecorder()
	h.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/impressum", rec.Header().Get("Location"))
}

func TestPageHandler_NotFound(t *testing.T) {
	h, _ := newTestPageHandler(t)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/missing")
	assert.Contains(t, rec.Body.String(), "<header")
}

func scrape(t *testing.T, metrics *monitoring.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

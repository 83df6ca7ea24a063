package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"richli-site/internal/health"
	"richli-site/internal/views"
)

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(health.NewHealthChecker(views.ImpressumDocument, "Impressum"), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status health.HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	h := NewHealthHandler(health.NewHealthChecker(func() []byte { return nil }, "Impressum"), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestHealthHandler_LogsWriteError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHealthHandler(health.NewHealthChecker(views.ImpressumDocument, "Impressum"), zap.New(core))

	h.Health(brokenWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "write health response", logs.All()[0].Message)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"richli-site/internal/health"
)

type HealthHandler struct {
	checker *health.HealthChecker
	log     *zap.Logger
}

func NewHealthHandler(checker *health.HealthChecker, log *zap.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		// Client went away mid-response
		h.log.Debug("write health response", zap.Error(err))
	}
}

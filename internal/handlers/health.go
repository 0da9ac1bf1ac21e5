package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler reports liveness of the order service. It deliberately
// checks nothing downstream: the catalog and identity services being
// down degrades order placement but does not make this process
// unhealthy.
type HealthHandler struct {
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler reporting the given version
func NewHealthHandler(version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		logger:  logger,
	}
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ServeHTTP handles GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "order-service",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	}, h.logger)
}

package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by database.RedisDB.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	redis HealthChecker
}

func NewHealthHandler(redis HealthChecker) *HealthHandler {
	return &HealthHandler{redis: redis}
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "alive"})
}

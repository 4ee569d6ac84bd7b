package api

import (
	"context"
	"net/http"
	"time"

	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/response"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	base
	db Pinger
}

func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{base: base{log: log}, db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, "")
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Error("Readiness check failed", "error", err)
		response.Error(w, apperrors.NewHTTPError(http.StatusServiceUnavailable, "Database is not reachable"))
		return
	}
	response.Success(w, map[string]string{"status": "ready"}, "")
}

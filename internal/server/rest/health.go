package rest

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(r.Context(), "database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: statusUnhealthy})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: statusHealthy})
}

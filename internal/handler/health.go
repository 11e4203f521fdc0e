package handler

import (
	"context"
	"net/http"
	"time"

	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			logger.FromCtx(r.Context()).Error("health check failed", zap.Error(err))
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

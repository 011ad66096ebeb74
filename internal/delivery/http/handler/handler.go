package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/delivery/http/response"
)

type Handler struct {
	runID     string
	startedAt time.Time
	now       func() time.Time
	logger    *zap.Logger
}

func NewHandler(runID string, startedAt time.Time, logger *zap.Logger) *Handler {
	return &Handler{
		runID:     runID,
		startedAt: startedAt,
		now:       time.Now,
		logger:    logger,
	}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := response.HealthResponse{
		Status:    "ok",
		RunID:     h.runID,
		StartedAt: h.startedAt,
		UptimeSec: int64(h.now().Sub(h.startedAt).Seconds()),
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, response.ErrorResponse{Error: "not found"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

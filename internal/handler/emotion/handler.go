package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	analysis "github.com/moodmate/companion/internal/analysis/emotion"
	emotionService "github.com/moodmate/companion/internal/service/emotion"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 摄像头情绪读数的HTTP处理器
type Handler struct {
	interval time.Duration
	logger   *zap.Logger
}

// New 创建情绪处理器，interval 为采样周期
func New(interval time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Handler{interval: interval, logger: logger}
}

// RegisterRoutes 注册情绪相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.handleStream)
	r.Post("/dominant", h.handleDominant)
}

// Sample SSE 推送的一次采样
type Sample struct {
	Readings analysis.Readings `json:"readings"`
	Dominant analysis.Decision `json:"dominant"`
}

func newSample(r analysis.Readings) Sample {
	return Sample{Readings: r, Dominant: r.Dominant()}
}

// handleStream 以 SSE 推送模拟的情绪读数，首个事件为基线。limit 参数可限制事件数量。
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	utils.SetupSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sim := emotionService.NewSimulator(h.interval, nil)
	if err := utils.SendSSEEvent(w, flusher, "emotion", newSample(sim.Current())); err != nil {
		return
	}

	sent := 1
	if limit > 0 && sent >= limit {
		return
	}

	h.logger.Debug("emotion stream opened")
	sim.Run(ctx, func(readings analysis.Readings) {
		if err := utils.SendSSEEvent(w, flusher, "emotion", newSample(readings)); err != nil {
			cancel()
			return
		}
		sent++
		if limit > 0 && sent >= limit {
			cancel()
		}
	})
	h.logger.Debug("emotion stream closed", zap.Int("events", sent))
}

// handleDominant 返回给定读数的主导情绪
func (h *Handler) handleDominant(w http.ResponseWriter, r *http.Request) {
	var readings analysis.Readings
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	utils.RespondJSON(w, http.StatusOK, readings.Dominant())
}

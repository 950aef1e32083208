package checkin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	checkinService "github.com/moodmate/companion/internal/service/checkin"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 心情打卡的HTTP处理器
type Handler struct {
	checkinSvc *checkinService.Service
	logger     *zap.Logger
}

// New 创建心情打卡处理器
func New(checkinSvc *checkinService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{checkinSvc: checkinSvc, logger: logger}
}

// RegisterRoutes 注册心情打卡相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/moods", h.handleMoods)
	r.Post("/", h.handleCheckIn)
}

func (h *Handler) handleMoods(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.checkinSvc.Moods())
}

// handleCheckIn 记录所选心情并返回反馈语，记录同时写入心情存储
func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mood  string `json:"mood"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.checkinSvc.CheckIn(r.Context(), payload.Mood, payload.Notes)
	if err != nil {
		if errors.Is(err, checkinService.ErrUnknownMood) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("check-in failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, result)
}

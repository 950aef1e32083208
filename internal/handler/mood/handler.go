package mood

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	moodService "github.com/moodmate/companion/internal/service/mood"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 心情记录的HTTP处理器
type Handler struct {
	moodSvc *moodService.Service
	logger  *zap.Logger
}

// New 创建心情记录处理器
func New(moodSvc *moodService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{moodSvc: moodSvc, logger: logger}
}

// RegisterRoutes 注册心情记录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/add", h.handleAdd)
	r.Get("/all", h.handleList)
	r.Get("/trends", h.handleTrends)
}

// handleAdd 新增一条心情记录。校验失败与数据库错误均返回 500。
func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := moodService.ParseInput(body)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entry, err := h.moodSvc.Add(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to add mood entry", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

// handleList 按时间倒序返回所有记录
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.moodSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list mood entries", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

// handleTrends 返回心情分布与连续打卡天数
func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.moodSvc.Trends(r.Context())
	if err != nil {
		h.logger.Error("failed to compute mood trends", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, trends)
}

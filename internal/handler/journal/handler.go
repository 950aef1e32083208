package journal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	journalService "github.com/moodmate/companion/internal/service/journal"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 日记的HTTP处理器
type Handler struct {
	journalSvc *journalService.Service
	logger     *zap.Logger
}

// New 创建日记处理器
func New(journalSvc *journalService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{journalSvc: journalSvc, logger: logger}
}

// RegisterRoutes 注册日记相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Post("/entries", h.handleCreate)
	r.Get("/entries", h.handleList)
	r.Delete("/entries/{entryID}", h.handleDelete)
}

type contentPayload struct {
	Content string `json:"content"`
}

// handleAnalyze 只做情绪分析，不保存
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload contentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.journalSvc.Analyze(payload.Content)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// handleCreate 分析并保存日记
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload contentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.journalSvc.Create(r.Context(), payload.Content)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusCreated, entry)
	case errors.Is(err, journalService.ErrEmptyContent):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.RespondError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error("failed to create journal entry", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleList 按时间倒序列出日记
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.journalSvc.List(r.Context()))
}

// handleDelete 删除日记
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.journalSvc.Delete(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		if errors.Is(err, journalService.ErrEntryNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondNoContent(w)
}

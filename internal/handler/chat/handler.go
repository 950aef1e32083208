package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/analysis/emotion"
	chatService "github.com/moodmate/companion/internal/service/chat"
	"github.com/moodmate/companion/pkg/utils"
)

// Options 控制实时连接中的摄像头采样与提示条时长。
type Options struct {
	EmotionSampleInterval time.Duration
	BannerTTL             time.Duration
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc  *chatService.Service
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.EmotionSampleInterval <= 0 {
		opts.EmotionSampleInterval = 2 * time.Second
	}
	if opts.BannerTTL <= 0 {
		opts.BannerTTL = 5 * time.Second
	}
	return &Handler{
		chatSvc: chatSvc,
		opts:    opts,
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reply", h.handleReply)
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Post("/messages", h.handleSendMessage)
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

// handleReply 对单条消息生成回复，不记录会话
func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message  string            `json:"message"`
		Emotions *emotion.Readings `json:"emotions,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.chatSvc.Reply(r.Context(), payload.Message, payload.Emotions)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

// handleCreateSession 创建会话，首条消息为问候语
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleTranscript 返回会话的全部消息
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, messages)
}

// handleSendMessage 保存用户消息并返回助手回复
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string            `json:"sessionId"`
		Content   string            `json:"content"`
		Emotions  *emotion.Readings `json:"emotions,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, assistant, err := h.chatSvc.Exchange(r.Context(), payload.SessionID, payload.Content, payload.Emotions)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"reply": assistant,
	})
}

// respondChatError 将服务错误映射为HTTP状态码
func (h *Handler) respondChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrEmptyContent):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.RespondError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error("chat request failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

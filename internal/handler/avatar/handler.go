package avatar

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moodmate/companion/internal/model/avatar"
	avatarService "github.com/moodmate/companion/internal/service/avatar"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 头像定制的HTTP处理器
type Handler struct {
	avatarSvc *avatarService.Service
}

// New 创建头像处理器
func New(avatarSvc *avatarService.Service) *Handler {
	return &Handler{avatarSvc: avatarSvc}
}

// RegisterRoutes 注册头像相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/features", h.handleFeatures)
	r.Get("/", h.handleProfile)
	r.Put("/", h.handleUpdate)
	r.Delete("/", h.handleReset)
}

func (h *Handler) handleFeatures(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.avatarSvc.Features())
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.avatarSvc.Profile())
}

// handleUpdate 部分更新头像，任一字段非法则整体不生效
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch avatar.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.avatarSvc.Update(patch)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, avatarService.ErrInvalidSelection) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, profile)
}

// handleReset 恢复默认头像
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.avatarSvc.Reset())
}

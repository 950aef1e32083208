package suggestion

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	suggestionService "github.com/moodmate/companion/internal/service/suggestion"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 推荐内容的HTTP处理器
type Handler struct {
	suggestionSvc *suggestionService.Service
}

// New 创建推荐处理器
func New(suggestionSvc *suggestionService.Service) *Handler {
	return &Handler{suggestionSvc: suggestionSvc}
}

// RegisterRoutes 注册推荐相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/{suggestionID}/like", h.handleLike)
}

// handleList 返回全部分类，或按 category 参数过滤
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.suggestionSvc.List(r.URL.Query().Get("category"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, categories)
}

// handleLike 切换收藏状态
func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "suggestionID")
	liked, err := h.suggestionSvc.ToggleLike(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, suggestionService.ErrSuggestionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"id": id, "liked": liked})
}

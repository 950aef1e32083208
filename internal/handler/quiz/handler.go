package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	quizService "github.com/moodmate/companion/internal/service/quiz"
	"github.com/moodmate/companion/pkg/utils"
)

// Handler 性格测试的HTTP处理器
type Handler struct {
	quizSvc *quizService.Service
}

// New 创建性格测试处理器
func New(quizSvc *quizService.Service) *Handler {
	return &Handler{quizSvc: quizSvc}
}

// RegisterRoutes 注册性格测试相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/questions", h.handleQuestions)
	r.Post("/score", h.handleScore)
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.quizSvc.Questionnaire())
}

// handleScore 计算各项性格得分，答案取值 1~5，0 表示跳过
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Answers map[string]int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quizSvc.Score(payload.Answers)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

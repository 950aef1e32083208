package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/moodmate/companion/internal/handler/avatar"
	"github.com/moodmate/companion/internal/handler/chat"
	"github.com/moodmate/companion/internal/handler/checkin"
	"github.com/moodmate/companion/internal/handler/emotion"
	"github.com/moodmate/companion/internal/handler/journal"
	"github.com/moodmate/companion/internal/handler/mood"
	"github.com/moodmate/companion/internal/handler/quiz"
	"github.com/moodmate/companion/internal/handler/suggestion"
	middlewarePkg "github.com/moodmate/companion/internal/middleware"
	avatarService "github.com/moodmate/companion/internal/service/avatar"
	chatService "github.com/moodmate/companion/internal/service/chat"
	checkinService "github.com/moodmate/companion/internal/service/checkin"
	journalService "github.com/moodmate/companion/internal/service/journal"
	moodService "github.com/moodmate/companion/internal/service/mood"
	quizService "github.com/moodmate/companion/internal/service/quiz"
	suggestionService "github.com/moodmate/companion/internal/service/suggestion"
	"github.com/moodmate/companion/pkg/utils"
)

// Services groups the domain services the router exposes.
type Services struct {
	Mood        *moodService.Service
	Chat        *chatService.Service
	Journal     *journalService.Service
	Quiz        *quizService.Service
	Checkin     *checkinService.Service
	Avatar      *avatarService.Service
	Suggestions *suggestionService.Service
}

// Options carries transport settings that are not owned by a service.
type Options struct {
	AllowedOrigins []string
	Chat           chat.Options
}

// NewRouter wires HTTP routes to core services.
func NewRouter(svcs Services, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigins))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		api.Route("/mood", mood.New(svcs.Mood, logger).RegisterRoutes)
		api.Route("/chat", chat.New(svcs.Chat, opts.Chat, logger).RegisterRoutes)
		api.Route("/journal", journal.New(svcs.Journal, logger).RegisterRoutes)
		api.Route("/quiz", quiz.New(svcs.Quiz).RegisterRoutes)
		api.Route("/checkin", checkin.New(svcs.Checkin, logger).RegisterRoutes)
		api.Route("/avatar", avatar.New(svcs.Avatar).RegisterRoutes)
		api.Route("/suggestions", suggestion.New(svcs.Suggestions).RegisterRoutes)
		api.Route("/emotions", emotion.New(opts.Chat.EmotionSampleInterval, logger).RegisterRoutes)
	})

	return r
}

package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyforge/platform/internal/auth"
	"github.com/studyforge/platform/internal/guard"
	"github.com/studyforge/platform/internal/handler"
	"github.com/studyforge/platform/internal/progress"
	"github.com/studyforge/platform/internal/repository"
	"github.com/studyforge/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	profileRepo := repository.NewPgProfileRepository()
	authUserRepo := repository.NewPgAuthUserRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Progress recorder — the sole write path into the profile store
	recorder := progress.NewRecorder(pool, profileRepo, outboxRepo, logger)

	// Services
	authSvc := service.NewAuthService(pool, authUserRepo, profileRepo, outboxRepo, jwtMgr)

	// Guards on the study write path
	idem := guard.NewIdempotencyGuard()
	limiter := guard.NewRateLimiter(120, time.Minute)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	studyHandler := handler.NewStudyHandler(recorder, idem, limiter)
	progressHandler := handler.NewProgressHandler(recorder)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Route("/study", func(r chi.Router) {
			r.Post("/flashcards", studyHandler.FlashcardsStudied)
			r.Post("/answers", studyHandler.QuestionsAnswered)
			r.Post("/quizzes", studyHandler.QuizCompleted)
			r.Post("/sets", studyHandler.StudySetCreated)
			r.Post("/activity", studyHandler.DailyActivity)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/me", progressHandler.GetMe)
			r.Get("/achievements", progressHandler.ListAchievements)
		})
	})

	return r
}

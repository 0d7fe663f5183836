package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakura-comic/backend/internal/api/handlers"
	"github.com/sakura-comic/backend/internal/api/middleware"
	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/auth"
	"github.com/sakura-comic/backend/internal/catalog"
	"github.com/sakura-comic/backend/internal/collection"
	"github.com/sakura-comic/backend/internal/comments"
	"github.com/sakura-comic/backend/internal/config"
	"github.com/sakura-comic/backend/internal/db"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.Security.CORSOrigins))
	r.Use(middleware.MaxBodySize(cfg.API.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Status(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Status(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Services
	authService := auth.NewService(database, jwtService)
	catalogService := catalog.NewService(database, cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	commentService := comments.NewService(database)
	collectionService := collection.NewService(database, cfg.API.DefaultPageSize, cfg.API.MaxPageSize)

	// Handlers
	healthHandler := handlers.NewHealthHandler(database)
	authHandler := handlers.NewAuthHandler(authService)
	videoHandler := handlers.NewVideoHandler(catalogService)
	commentHandler := handlers.NewCommentHandler(commentService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)

	r.Get("/", healthHandler.Root)
	r.Get("/healthz", healthHandler.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public routes
	limited := middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow)
	r.With(limited).Post("/auth/register", authHandler.Register)
	r.With(limited).Post("/auth/login", authHandler.Login)

	r.Get("/vod_list", videoHandler.List)
	r.Get("/vod_detail", videoHandler.Detail)
	r.Get("/show/comment/{videoId:[0-9]+}", commentHandler.Show)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(authService))

		r.Get("/auth/user", authHandler.Me)

		r.Post("/publish/comment/{videoId:[0-9]+}", commentHandler.Publish)
		r.Post("/reply/comment/{commentId:[0-9]+}", commentHandler.Reply)

		r.Get("/collection/add", collectionHandler.Add)
		r.Get("/collection/remove", collectionHandler.Remove)
		r.Get("/collection/is_collection", collectionHandler.IsCollected)
		r.Get("/collection/show", collectionHandler.Show)
	})

	return r
}

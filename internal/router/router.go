package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jewelry-chat-backend/internal/handlers"
	"jewelry-chat-backend/internal/middleware"
)

// RateLimiter guards the chat route.
type RateLimiter interface {
	Middleware(next http.Handler) http.Handler
}

func New(
	chatHandler *handlers.ChatHandler,
	chatLimiter RateLimiter,
	logger *zap.Logger,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	chatRoutes := func(r chi.Router) {
		r.With(chatLimiter.Middleware).Post("/chat-jewelry", chatHandler.ChatJewelry)
		r.Get("/chat-history/{itemId}", chatHandler.GetHistory)
	}

	// Legacy clients call the root paths directly.
	chatRoutes(r)
	r.Route("/api/v1", chatRoutes)

	return r
}

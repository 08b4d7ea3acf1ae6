package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strivetech/sales-ai-platform/internal/chat"
	httpmiddleware "github.com/strivetech/sales-ai-platform/internal/http/middleware"
	"github.com/strivetech/sales-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// MessageLimiter caps per-IP traffic on the conversation endpoints.
	// Nil disables rate limiting. The caller owns its cleanup lifecycle.
	MessageLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ChatHandler.HandleHealth)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/conversations", func(r chi.Router) {
		if cfg.MessageLimiter != nil {
			r.Use(httpmiddleware.RateLimit(cfg.MessageLimiter))
		}
		r.Post("/message", cfg.ChatHandler.HandleMessage)
		r.Post("/booking-confirmed", cfg.ChatHandler.HandleBookingConfirmed)
	})

	return r
}

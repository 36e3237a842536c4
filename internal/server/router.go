package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/speaktime/speaktime-api/internal/config"
	"github.com/speaktime/speaktime-api/internal/handler"
	"github.com/speaktime/speaktime-api/internal/httputil"
	"github.com/speaktime/speaktime-api/internal/middleware"
)

// NewRouter creates and configures the HTTP router. Registration, login,
// health and the public test endpoint are open; everything else sits behind
// the authentication guard.
func NewRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	authGuard *middleware.Auth,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	groupHandler *handler.GroupHandler,
	meetingHandler *handler.MeetingHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/test", authHandler.Test)
			r.With(httprate.LimitByIP(3, time.Hour)).Post("/register", authHandler.Register)
			r.With(httprate.LimitByIP(5, 15*time.Minute)).Post("/login", authHandler.Login)
			r.With(authGuard.RequireAuth).Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(authGuard.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", groupHandler.Create)
				r.Get("/", groupHandler.List)
				r.Get("/{id}", groupHandler.Get)
				r.Get("/{id}/members", groupHandler.Members)
				r.Put("/{id}/name", groupHandler.UpdateName)
				r.Put("/{id}/description", groupHandler.UpdateDescription)
				r.Post("/{id}/members", groupHandler.AddMembers)
				r.Delete("/{id}/members", groupHandler.RemoveMembers)
				r.Delete("/{id}", groupHandler.Delete)
			})

			r.Route("/meetings", func(r chi.Router) {
				r.Post("/", meetingHandler.Create)
				r.Get("/", meetingHandler.List)
				r.Get("/{id}", meetingHandler.Get)
				r.Put("/{id}", meetingHandler.Update)
				r.Delete("/{id}", meetingHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "route not found", http.StatusNotFound)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

package api

import (
	"net/http"
	"time"

	"coachup_api/internal/api/handler"
	"coachup_api/internal/api/middleware"
	"coachup_api/internal/app/service"
	"coachup_api/internal/common/security"
	"coachup_api/internal/domain/model"
	"coachup_api/internal/domain/repository"
	"coachup_api/internal/platform/logging"
	"coachup_api/internal/platform/ratelimit"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	userRepo repository.UserRepository,
	limiter *ratelimit.Limiter,
	logger logging.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// CSRF token issuance (public, session-cookie scoped)
	csrfHandler := handler.NewCsrfHandler(logger)
	csrfHandler.RegisterRoutes(r)

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (rate-limited public + /me)
		authHandler := handler.NewAuthHandler(authService, userService, limiter, logger)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Admin routes (live admin check + CSRF on mutations)
		adminHandler := handler.NewAdminHandler(userService, logger)
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromAuthCookie, jwtauth.TokenFromHeader))
			admin.Use(middleware.Authenticator)
			admin.Use(middleware.RequireRole(userRepo, model.RoleAdmin))
			adminHandler.RegisterRoutes(admin)
		})
	})

	return r
}

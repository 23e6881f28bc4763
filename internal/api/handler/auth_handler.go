package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"coachup_api/internal/api/middleware"
	"coachup_api/internal/app/service"
	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
	"coachup_api/internal/platform/config"
	"coachup_api/internal/platform/logging"
	"coachup_api/internal/platform/ratelimit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	limiter     *ratelimit.Limiter
	logger      logging.Logger
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, limiter *ratelimit.Limiter, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		limiter:     limiter,
		logger:      logger,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	cfg := config.AppConfig

	r.With(middleware.RateLimit(h.limiter, "signup", cfg.SignupRateLimit, cfg.SignupRateWindow)).
		Post("/signup", h.signup)
	r.With(middleware.RateLimit(h.limiter, "login", cfg.LoginRateLimit, cfg.LoginRateWindow)).
		Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(protected chi.Router) {
		protected.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromAuthCookie, jwtauth.TokenFromHeader))
		protected.Use(middleware.Authenticator)
		protected.Get("/me", h.me)
	})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "user_id", user.ID, "username", user.Username)
	common.RespondWithJSON(w, http.StatusCreated, common.Response{
		Success: true,
		Message: "account created",
		Data:    user,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			// Identical wording for unknown email and wrong password.
			common.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	setAuthCookie(w, resp.Token)
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "login successful",
		Data:    resp.User,
	})
}

// logout is idempotent: with no active session it still clears cookies and
// succeeds. Stateless tokens mean there is nothing to revoke server-side.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, security.AuthCookieName)
	clearCookie(w, security.CsrfCookieName)
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "logged out",
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Valid token for a record that no longer exists.
			common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	common.RespondWithData(w, http.StatusOK, user)
}

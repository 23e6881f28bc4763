package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coachup_api/internal/api/middleware"
	"coachup_api/internal/app/service"
	"coachup_api/internal/common"
	"coachup_api/internal/platform/logging"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	userService *service.UserService
	logger      logging.Logger
}

func NewAdminHandler(userService *service.UserService, logger logging.Logger) *AdminHandler {
	return &AdminHandler{userService: userService, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	// Role changes are state-changing and must echo the CSRF token.
	r.With(middleware.VerifyCsrf).Put("/users/{userID}/role", h.updateRole)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.userService.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *AdminHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	userID := chi.URLParam(r, "userID")
	user, err := h.userService.UpdateRole(r.Context(), userID, req.Role)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(r.Context())
	h.logger.Info(r.Context(), "user role updated",
		"admin_id", adminID, "user_id", user.ID, "role", user.Role)
	common.RespondWithData(w, http.StatusOK, user)
}

package handler

import (
	"net/http"

	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
	"coachup_api/internal/platform/logging"

	"github.com/go-chi/chi/v5"
)

type CsrfHandler struct {
	logger logging.Logger
}

func NewCsrfHandler(logger logging.Logger) *CsrfHandler {
	return &CsrfHandler{logger: logger}
}

func (h *CsrfHandler) RegisterRoutes(r chi.Router) {
	r.Get("/csrf-token", h.issue)
}

// issue returns the CSRF token for this browser session, minting one on the
// first call. The token lives in an HTTP-only cookie and is mirrored in the
// body so the client can echo it back in the X-CSRF-Token header.
func (h *CsrfHandler) issue(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(security.CsrfCookieName); err == nil && cookie.Value != "" {
		common.RespondWithData(w, http.StatusOK, map[string]string{"csrf_token": cookie.Value})
		return
	}

	token, err := security.NewCsrfToken()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	setCsrfCookie(w, token)
	common.RespondWithData(w, http.StatusOK, map[string]string{"csrf_token": token})
}

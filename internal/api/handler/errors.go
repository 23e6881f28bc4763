package handler

import (
	"net/http"

	"coachup_api/internal/common"
	"coachup_api/internal/platform/logging"

	"github.com/getsentry/sentry-go"
)

// respondError is the single error-to-response mapping for handlers.
// Validation, conflict and auth errors carry client-safe text built by us;
// anything mapping to a 500 is logged and captured with full detail and
// surfaced only as a generic message.
func respondError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
		sentry.CaptureException(err)
		common.RespondWithError(w, status, "internal server error")
		return
	}
	common.RespondWithError(w, status, err.Error())
}

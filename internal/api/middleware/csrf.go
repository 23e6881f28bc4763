package middleware

import (
	"net/http"

	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
)

// VerifyCsrf rejects state-changing requests whose X-CSRF-Token header does
// not match the token previously issued in the csrf cookie. The token must
// come from the header, not the body. Safe methods pass through.
func VerifyCsrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(security.CsrfCookieName)
		if err != nil || cookie.Value == "" {
			common.RespondWithError(w, http.StatusForbidden, "missing csrf token")
			return
		}

		if !security.VerifyCsrfToken(cookie.Value, r.Header.Get(security.CsrfHeaderName)) {
			common.RespondWithError(w, http.StatusForbidden, "invalid csrf token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"coachup_api/internal/common"
	"coachup_api/internal/platform/ratelimit"
)

// RateLimit enforces maxRequests per window per client key and reports the
// budget through X-RateLimit-* headers on every response. scope namespaces
// the counter so routes with different ceilings do not share budgets.
func RateLimit(limiter *ratelimit.Limiter, scope string, maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiter.Check(scope+":"+ClientKey(r), maxRequests, window)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retryAfter := int(time.Until(res.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				common.RespondWithError(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the client for rate limiting: the first
// X-Forwarded-For entry, then X-Real-IP, else "unknown". Behind an
// untrusted proxy these headers are attacker-controlled, which makes the
// limiter bypassable; a trusted-proxy allowlist is deliberately not part
// of this layer.
func ClientKey(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return "unknown"
}

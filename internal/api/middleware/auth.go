package middleware

import (
	"context"
	"errors"
	"net/http"

	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
	"coachup_api/internal/domain/model"
	"coachup_api/internal/domain/repository"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UserRoleCtxKey contextKey = "userRole"
)

// TokenFromAuthCookie feeds jwtauth.Verify with the session cookie value.
func TokenFromAuthCookie(r *http.Request) string {
	cookie, err := r.Cookie(security.AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticator answers "who is this request". It requires a token already
// verified by jwtauth.Verifier earlier in the chain and places the identity
// claims on the request context. An absent or invalid token is a 401.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route at the given role. Coach-level gates trust the
// token's role claim; admin gates re-read the live user record so a
// demotion takes effect without waiting out the token lifetime. One source
// of truth per gate, never both.
func RequireRole(users repository.UserRepository, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claimedRole, ok := GetUserRoleFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			effectiveRole := claimedRole
			if role == model.RoleAdmin {
				userID, ok := GetUserIDFromContext(r.Context())
				if !ok {
					common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
					return
				}
				user, err := users.FindByID(r.Context(), userID)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						common.RespondWithError(w, http.StatusUnauthorized, "authorization required")
						return
					}
					sentry.CaptureException(err)
					common.RespondWithError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				effectiveRole = user.Role
			}

			if !model.RoleSatisfies(effectiveRole, role) {
				common.RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"coachup_api/internal/common/security"

	"github.com/stretchr/testify/require"
)

func csrfRequest(t *testing.T, method, cookieVal, headerVal string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/mutate", nil)
	if cookieVal != "" {
		req.AddCookie(&http.Cookie{Name: security.CsrfCookieName, Value: cookieVal})
	}
	if headerVal != "" {
		req.Header.Set(security.CsrfHeaderName, headerVal)
	}
	rec := httptest.NewRecorder()
	VerifyCsrf(okHandler()).ServeHTTP(rec, req)
	return rec
}

func TestVerifyCsrf(t *testing.T) {
	t.Parallel()

	token, err := security.NewCsrfToken()
	require.NoError(t, err)

	// Safe methods pass without any token.
	require.Equal(t, http.StatusOK, csrfRequest(t, http.MethodGet, "", "").Code)

	require.Equal(t, http.StatusForbidden, csrfRequest(t, http.MethodPost, "", "").Code)
	require.Equal(t, http.StatusForbidden, csrfRequest(t, http.MethodPost, token, "").Code)
	require.Equal(t, http.StatusForbidden, csrfRequest(t, http.MethodPost, token, token[:10]).Code)
	require.Equal(t, http.StatusForbidden, csrfRequest(t, http.MethodPut, "", token).Code)

	require.Equal(t, http.StatusOK, csrfRequest(t, http.MethodPost, token, token).Code)
	require.Equal(t, http.StatusOK, csrfRequest(t, http.MethodPut, token, token).Code)
}

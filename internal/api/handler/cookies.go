package handler

import (
	"net/http"

	"coachup_api/internal/common/security"
	"coachup_api/internal/platform/config"
)

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWTExp.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func setCsrfCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.CsrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.CsrfTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

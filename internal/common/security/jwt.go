package security

import (
	"context"
	"errors"
	"time"

	"coachup_api/internal/common"
	"coachup_api/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName carries the session token; HTTP-only, so scripts never see it.
const AuthCookieName = "auth-token"

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a signed, self-contained session token. Validity is
// determined purely by signature and expiry; no server-side session state
// exists, so a stolen-but-unexpired token stays valid until natural expiry.
func GenerateToken(userID, username, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"email":    email,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(config.AppConfig.JWTExp).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// DecodeToken verifies signature and expiry and returns the claims map.
// It never partially trusts an unverified payload: tampering, expiry and
// malformed input all fail with common.ErrInvalidToken.
func DecodeToken(tokenString string) (map[string]interface{}, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		return nil, common.Errorf("decode session token: %w", common.ErrInvalidToken)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, common.Errorf("read session claims: %w", common.ErrInvalidToken)
	}
	return claims, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

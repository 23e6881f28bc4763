package security

import (
	"strings"
	"testing"
	"time"

	"coachup_api/internal/common"
	"coachup_api/internal/platform/config"

	"github.com/stretchr/testify/require"
)

func initTestJWT(t *testing.T, exp time.Duration) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: exp,
	}
	InitJWT()
}

func TestTokenRoundTrip(t *testing.T) {
	initTestJWT(t, time.Hour)

	tok, err := GenerateToken("u-1", "alice", "a@b.com", "user")
	require.NoError(t, err)

	claims, err := DecodeToken(tok)
	require.NoError(t, err)

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "u-1", userID)

	username, err := GetUsernameFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "alice", username)

	email, err := GetEmailFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)

	role, err := GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, "user", role)
}

func TestDecodeToken_TamperedPayload(t *testing.T) {
	initTestJWT(t, time.Hour)

	tok, err := GenerateToken("u-1", "alice", "a@b.com", "user")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Flip one byte in the payload segment.
	payload := []byte(parts[1])
	mid := len(payload) / 2
	if payload[mid] == 'A' {
		payload[mid] = 'B'
	} else {
		payload[mid] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = DecodeToken(tampered)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecodeToken_WrongSignature(t *testing.T) {
	initTestJWT(t, time.Hour)
	tok, err := GenerateToken("u-1", "alice", "a@b.com", "user")
	require.NoError(t, err)

	initTestJWT(t, time.Hour)
	config.AppConfig.JWTKey = []byte("another-secret")
	InitJWT()

	_, err = DecodeToken(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecodeToken_Expired(t *testing.T) {
	initTestJWT(t, -time.Minute)

	tok, err := GenerateToken("u-1", "alice", "a@b.com", "user")
	require.NoError(t, err)

	_, err = DecodeToken(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecodeToken_Malformed(t *testing.T) {
	initTestJWT(t, time.Hour)

	_, err := DecodeToken("not.a.jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = DecodeToken("")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

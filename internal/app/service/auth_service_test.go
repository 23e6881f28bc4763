package service

import (
	"context"
	"testing"
	"time"

	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
	"coachup_api/internal/domain/model"
	"coachup_api/internal/domain/repository"
	"coachup_api/internal/platform/config"

	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *AuthService {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("test-secret"),
		JWTExp:     time.Hour,
		BcryptCost: 4, // cheapest legal cost to keep tests fast
	}
	security.InitJWT()
	return NewAuthService(repository.NewInMemoryUserRepository())
}

func validSignup() SignupRequest {
	return SignupRequest{
		Username:  "alice",
		Email:     "a@b.com",
		Password:  "s3cret-pass",
		Game:      "valorant",
		SkillTier: "gold",
	}
}

func TestSignup_CreatesUser(t *testing.T) {
	svc := setupAuthTest(t)

	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, model.RoleUser, user.Role)
	require.Empty(t, user.HashedPassword)
}

func TestSignup_NormalizesEmail(t *testing.T) {
	svc := setupAuthTest(t)

	req := validSignup()
	req.Email = "  A@B.com "
	user, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	req := validSignup()
	req.Username = "someone-else"
	_, err = svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestSignup_DuplicateUsernameConflicts(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	req := validSignup()
	req.Email = "other@b.com"
	_, err = svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestSignup_Validation(t *testing.T) {
	svc := setupAuthTest(t)

	cases := []struct {
		name   string
		mutate func(*SignupRequest)
	}{
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }},
		{"empty email", func(r *SignupRequest) { r.Email = "" }},
		{"short username", func(r *SignupRequest) { r.Username = "ab" }},
		{"non slug username", func(r *SignupRequest) { r.Username = "Alice Smith!" }},
		{"short password", func(r *SignupRequest) { r.Password = "short" }},
		{"unknown game", func(r *SignupRequest) { r.Game = "chess" }},
		{"unknown tier", func(r *SignupRequest) { r.SkillTier = "legendary" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSignup()
			tc.mutate(&req)
			_, err := svc.Signup(context.Background(), req)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Username)
	require.Empty(t, resp.User.HashedPassword)

	claims, err := security.DecodeToken(resp.Token)
	require.NoError(t, err)
	role, err := security.GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@b.com", Password: "whatever1"})
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogin_ValidatesShape(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nope", Password: "whatever1"})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: ""})
	require.ErrorIs(t, err, common.ErrValidation)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"coachup_api/internal/common"
	"coachup_api/internal/common/security"
	"coachup_api/internal/domain/model"
	"coachup_api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	maxEmailLength    = 254
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Game      string `json:"game"`
	SkillTier string `json:"skill_tier"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"-"` // Delivered as an HTTP-only cookie, never in the body
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if !model.IsValidGame(req.Game) {
		return nil, fmt.Errorf("unknown game %q: %w", req.Game, common.ErrValidation)
	}
	if !model.IsValidSkillTier(req.SkillTier) {
		return nil, fmt.Errorf("unknown skill tier %q: %w", req.SkillTier, common.ErrValidation)
	}

	// Pre-check uniqueness for friendly messages; the unique constraints in
	// the store still back this up against races.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email is already registered: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username is already taken: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
		Game:           req.Game,
		SkillTier:      req.SkillTier,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo translates unique violations to common.ErrConflict
		return nil, err
	}

	user.HashedPassword = "" // Clear password hash before returning
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Reported identically to a password mismatch so responses never
			// reveal whether an account exists.
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return fmt.Errorf("email format is invalid: %w", common.ErrValidation)
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be %d-%d characters: %w",
			minUsernameLength, maxUsernameLength, common.ErrValidation)
	}
	if !slug.IsSlug(username) {
		return fmt.Errorf("username may only contain lowercase letters, digits and hyphens: %w",
			common.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > security.MaxPasswordLength {
		return fmt.Errorf("password must be %d-%d characters: %w",
			minPasswordLength, security.MaxPasswordLength, common.ErrValidation)
	}
	return nil
}

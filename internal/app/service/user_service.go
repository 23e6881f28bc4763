package service

import (
	"context"
	"fmt"

	"coachup_api/internal/common"
	"coachup_api/internal/domain/model"
	"coachup_api/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the live user record with the password hash stripped.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// List returns public user records, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.HashedPassword = ""
	}
	return users, nil
}

// UpdateRole promotes or demotes a user between user, coach and admin.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required: %w", common.ErrValidation)
	}
	if !model.IsValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, common.ErrValidation)
	}

	user, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

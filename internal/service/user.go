package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/stay-planner/internal/domain"
	"github.com/pkordes/stay-planner/internal/repo"
)

// UserService implements business logic for User operations.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// Create registers a user. The email is trimmed and lowercased before it is
// stored. Returns domain.ErrValidation for a missing or malformed address and
// domain.ErrConflict if it is already taken.
func (s *UserService) Create(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.User{}, fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}
	u, err := s.repo.Create(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return u, nil
}

// GetByID returns a user or domain.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return u, nil
}

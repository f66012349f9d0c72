package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketpro/pos-server/internal/models"
)

// Login matches the username/password pair against the Users
// collection. Passwords are compared in plaintext; there is no lockout
// or attempt counting.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil || user.Password != req.Password {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
		User:      user,
	}, nil
}

func (s *DefaultService) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ListUsers(ctx)
}

// CreateUser adds a staff account with the fixed all-sections
// permission set. There is no update operation for existing users.
func (s *DefaultService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Password:    req.Password,
		Role:        role,
		Phone:       req.Phone,
		Address:     req.Address,
		StartDate:   time.Now().UTC(),
		Permissions: models.AllSections(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a staff account. The built-in admin username is
// protected.
func (s *DefaultService) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Username == "admin" {
		return ErrUserProtected
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

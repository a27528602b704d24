package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
)

// AuthService handles signup and login: credential hashing on the way
// in, token issuance on the way out.
type AuthService struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthService(users repositories.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 254), is.Email),
		validation.Field(&r.Username, validation.Required, validation.Length(5, 64)),
		// bcrypt ignores input past 72 bytes.
		validation.Field(&r.Password, validation.Required, validation.Length(5, 72)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(5, 72)),
	)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Signup creates an account and returns a fresh token. A duplicate
// email surfaces as domain.ErrConflict from the repository.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Hash:     hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "id", user.ID)
	return &TokenResponse{AccessToken: token}, nil
}

// Login verifies credentials and returns a fresh token. An unknown
// email and a wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("incorrect credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Hash, req.Password) {
		return nil, fmt.Errorf("incorrect credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "id", user.ID)
	return &TokenResponse{AccessToken: token}, nil
}

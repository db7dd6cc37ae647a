package service

import (
	"context"
	"strings"
	"time"

	"bugtrack/internal/apperr"
	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
	"bugtrack/internal/utils"
)

type AuthService struct {
	users  repository.UserRepository
	secret string
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Register creates a USER-level account and returns a signed token, so the
// client is logged in immediately after registering.
func (a *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (dto.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return dto.AuthResponse{}, apperr.Validation("email is required")
	}
	if len(password) < 6 {
		return dto.AuthResponse{}, apperr.Validation("password must be at least 6 characters")
	}

	existing, _, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if existing != nil {
		return dto.AuthResponse{}, apperr.Conflict("email already in use: %s", email)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	u := &models.User{
		Email:          email,
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		AuthorityLevel: models.LevelUser,
	}
	if err := a.users.Create(ctx, u, hash); err != nil {
		return dto.AuthResponse{}, err
	}

	tok, err := utils.SignJWT(a.secret, u.ID, u.Email, u.AuthorityLevel, a.ttl)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.NewAuthResponse(tok, u), nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (dto.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, hash, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if u == nil || !utils.CheckPassword(hash, password) {
		return dto.AuthResponse{}, apperr.Authentication("invalid credentials")
	}

	tok, err := utils.SignJWT(a.secret, u.ID, u.Email, u.AuthorityLevel, a.ttl)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.NewAuthResponse(tok, u), nil
}

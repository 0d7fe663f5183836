package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakura-comic/backend/internal/apperr"
	"github.com/sakura-comic/backend/internal/db"
	"github.com/sakura-comic/backend/internal/db/models"
	"github.com/sakura-comic/backend/internal/metrics"
)

// UserStore is the persistence the identity service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type Service struct {
	users  UserStore
	tokens *JWTService
}

func NewService(users UserStore, tokens *JWTService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates an account. The username is checked for uniqueness by the store.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperr.Validation("username and password are required")
	}
	hash, err := HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return apperr.Validation("password is too long")
	}
	if err != nil {
		return apperr.Internal("failed to register", err)
	}
	if _, err := s.users.CreateUser(ctx, username, hash); err != nil {
		if errors.Is(err, db.ErrConflict) {
			return apperr.Conflict("username already exists")
		}
		return apperr.Internal("failed to register", err)
	}
	metrics.AuthEvents.WithLabelValues("register").Inc()
	return nil
}

// errBadCredentials is shared by every login failure so callers cannot tell
// an unknown username from a wrong password.
var errBadCredentials = apperr.Auth("invalid username or password")

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		burnCompare(password)
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return "", errBadCredentials
	}
	if err != nil {
		return "", apperr.Internal("failed to log in", err)
	}
	if !CheckPassword(password, user.Password) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		return "", errBadCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", apperr.Internal("failed to generate token", err)
	}
	metrics.AuthEvents.WithLabelValues("login").Inc()
	return token, nil
}

// VerifyToken resolves a raw token to its user. An empty token is an auth error.
func (s *Service) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.Auth("token is missing")
	}
	claims, err := s.tokens.ValidateToken(token)
	if errors.Is(err, ErrExpiredToken) {
		metrics.AuthEvents.WithLabelValues("token_expired").Inc()
		return nil, apperr.Expired("token has expired")
	}
	if err != nil {
		metrics.AuthEvents.WithLabelValues("token_rejected").Inc()
		return nil, apperr.Auth("token is invalid")
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, db.ErrNotFound) {
		metrics.AuthEvents.WithLabelValues("token_rejected").Inc()
		return nil, apperr.Auth("token is invalid or user not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to verify token", err)
	}
	return user, nil
}

// GetCurrentUser returns the caller's public profile.
func (s *Service) GetCurrentUser(ctx context.Context, id models.Identity) (models.Profile, error) {
	user, err := s.users.GetUserByID(ctx, id.UserID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Profile{}, apperr.Auth("user not found")
	}
	if err != nil {
		return models.Profile{}, apperr.Internal("failed to load user", err)
	}
	return user.Profile(), nil
}

package services

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/ladderflash/internal/auth"
	"github.com/vytor/ladderflash/internal/errors"
	"github.com/vytor/ladderflash/internal/logger"
	"github.com/vytor/ladderflash/internal/models"
	"github.com/vytor/ladderflash/internal/repository"
)

// AuthService handles account and token business logic
type AuthService interface {
	Register(ctx context.Context, email, password, username string) (*models.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, email, password, username string) (*models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, errors.NewValidationError("email", "must be a valid address")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check existing user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := auth.HashPassword(password)
	if stderrors.Is(err, auth.ErrPasswordTooShort) {
		return nil, errors.NewValidationError("password", err.Error())
	}
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user registered: id=%s", user.ID)
	return s.issue(ctx, user.ID)
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		log.Debug("login rejected")
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	return s.issue(ctx, user.ID)
}

func (s *authService) issue(ctx context.Context, userID string) (*models.TokenResponse, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to issue token: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to a user id.
func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid or expired token")
	}
	return userID, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		// token outlived its account
		return nil, errors.NewUnauthorizedError("account no longer exists")
	}
	return user, nil
}

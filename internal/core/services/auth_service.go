package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator verifies a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// authService issues access tokens after checking credentials.
type authService struct {
	BaseService
	cfg       *config.Config
	userRepo  portsrepo.UserReader
	validator IDTokenValidator
}

// AuthServiceOption is a functional option for configuring the auth service
type AuthServiceOption func(*authService)

// WithIDTokenValidator replaces the Google ID token validator.
func WithIDTokenValidator(v IDTokenValidator) AuthServiceOption {
	return func(s *authService) {
		s.validator = v
	}
}

// WithAuthClock replaces the service clock.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.Now = now
	}
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader, options ...AuthServiceOption) portssvc.AuthSvc {
	svc := &authService{
		cfg:       cfg,
		userRepo:  userRepo,
		validator: idtoken.Validate,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same bcrypt cost as the wrong-password path.
			utils.CheckPasswordHash(password, "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZwdY8FZ0kqGkh8zBvQJQ6S")
			s.LogWarn(ctx, "Login with unknown username", slog.String("username", username))
			return nil, "", time.Time{}, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, "", time.Time{}, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, apperrors.ErrUnauthorized
	}
	return s.issue(ctx, user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*domain.User, string, time.Time, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, "", time.Time{}, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnauthorized)
	}
	payload, err := s.validator(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		s.LogWarn(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, "", time.Time{}, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, "", time.Time{}, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Google sign-in for unknown email", slog.String("email", email))
			return nil, "", time.Time{}, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for google login")
		return nil, "", time.Time{}, err
	}
	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*domain.User, string, time.Time, error) {
	if !user.IsActive || user.DeletedAt != nil {
		s.LogWarn(ctx, "Login for inactive user", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, apperrors.ErrUnauthorized
	}
	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, token, expiresAt, nil
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/models"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type authClient interface {
	Login(ctx context.Context, creds models.LoginCredentials) (models.Credentials, error)
	Me(ctx context.Context) (models.User, error)
}

type credentialStore interface {
	Save(ctx context.Context, creds models.Credentials) error
	AdminUser(ctx context.Context) (models.AdminUser, error)
	Clear(ctx context.Context) error
	TokenExpiry(ctx context.Context) (*time.Time, error)
}

// AuthService handles operator login state.
type AuthService struct {
	client    authClient
	creds     credentialStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(client authClient, creds credentialStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{client: client, creds: creds, validator: validate, logger: logger}
}

// Login exchanges credentials for a token and persists both token and
// profile so later calls can authenticate.
func (s *AuthService) Login(ctx context.Context, in models.LoginCredentials) (models.Credentials, error) {
	if err := s.validator.Struct(in); err != nil {
		return models.Credentials{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	creds, err := s.client.Login(ctx, in)
	if err != nil {
		return models.Credentials{}, err
	}

	if err := s.creds.Save(ctx, creds); err != nil {
		return models.Credentials{}, err
	}

	s.logger.Info("operator logged in", zap.String("email", creds.User.Email))
	return creds, nil
}

// Logout clears the persisted credentials. Always succeeds locally; a
// storage error is logged, not surfaced.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear credentials", zap.Error(err))
	}
}

// Me returns the stored operator profile together with the token's
// expiry. The token is not verified locally; a stale token still
// completes here and fails on the next platform call.
func (s *AuthService) Me(ctx context.Context) (models.SessionInfo, error) {
	user, err := s.creds.AdminUser(ctx)
	if err != nil {
		return models.SessionInfo{}, err
	}

	info := models.SessionInfo{User: user, TokenSet: true}
	if exp, err := s.creds.TokenExpiry(ctx); err == nil {
		info.ExpiresAt = exp
	}
	return info, nil
}

// Refresh re-fetches the profile from the platform.
func (s *AuthService) Refresh(ctx context.Context) (models.AdminUser, error) {
	user, err := s.client.Me(ctx)
	if err != nil {
		return models.AdminUser{}, err
	}

	return models.AdminUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles,
	}, nil
}

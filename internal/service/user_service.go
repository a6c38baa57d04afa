package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type userClient interface {
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, data models.CreateUserData) (models.User, error)
	UpdateUser(ctx context.Context, id string, data models.UpdateUserData) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	AddCredits(ctx context.Context, id string, delta float64, idempotencyKey string) (models.User, error)
	LinkGuardian(ctx context.Context, studentID, guardianID string) error
	UnlinkGuardian(ctx context.Context, studentID, guardianID string) error
}

// UserService manages accounts through the platform backend while keeping
// the local list store reconciled.
type UserService struct {
	client    userClient
	store     *store.UserStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(client userClient, userStore *store.UserStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{client: client, store: userStore, validator: validate, logger: logger}
}

// validID rejects empty ids and the literal string "undefined", which
// indicates an upstream bug, before any network call.
func validID(id string) error {
	if id == "" || id == "undefined" {
		return appErrors.ErrInvalidID
	}
	return nil
}

// Refresh reloads the list from the platform. On failure the previous
// list remains served alongside the error.
func (s *UserService) Refresh(ctx context.Context, role string) ([]models.User, error) {
	s.store.SetLoading(true)
	users, err := s.client.ListUsers(ctx, role)
	if err != nil {
		s.store.Fail(err)
		return s.store.All(), err
	}
	s.store.Replace(users)
	return users, nil
}

// List returns the cached list, filtered by role, status and a free-text
// search over name and email.
func (s *UserService) List(q models.ListQuery) []models.User {
	users := s.store.All()
	if q.Role == "" && q.Status == "" && q.Search == "" {
		return users
	}

	needle := strings.ToLower(q.Search)
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if q.Role != "" && !u.HasRole(q.Role) {
			continue
		}
		if q.Status != "" && u.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered
}

// Get fetches one account from the platform.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	if err := validID(id); err != nil {
		return models.User{}, err
	}
	return s.client.GetUser(ctx, id)
}

// Create registers an account and prepends it to the local list.
func (s *UserService) Create(ctx context.Context, data models.CreateUserData) (models.User, error) {
	if err := s.validator.Struct(data); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	if len(data.Roles) == 0 {
		data.Roles = []string{models.RoleStudent}
	}

	created, err := s.client.CreateUser(ctx, data)
	if err != nil {
		return models.User{}, err
	}

	s.store.ApplyCreate(created)
	s.logger.Info("user created", zap.String("user_id", created.ID), zap.Strings("roles", created.Roles))
	return created, nil
}

// Update sends a partial patch and replaces the local record with the
// server's copy.
func (s *UserService) Update(ctx context.Context, id string, data models.UpdateUserData) (models.User, error) {
	if err := validID(id); err != nil {
		return models.User{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	updated, err := s.client.UpdateUser(ctx, id, data)
	if err != nil {
		return models.User{}, err
	}

	s.store.ApplyUpdate(updated)
	return updated, nil
}

// Delete removes the account and filters it out of the local list.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.store.ApplyDelete(id)
	return nil
}

// AddCredits applies a signed delta to a parent balance under a fresh
// idempotency key.
func (s *UserService) AddCredits(ctx context.Context, id string, data models.AddCreditsData) (models.User, error) {
	if err := validID(id); err != nil {
		return models.User{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	updated, err := s.client.AddCredits(ctx, id, data.Credits, uuid.NewString())
	if err != nil {
		return models.User{}, err
	}

	s.store.ApplyUpdate(updated)
	s.logger.Info("credits adjusted",
		zap.String("user_id", id),
		zap.Float64("delta", data.Credits),
		zap.String("reason", data.Reason),
	)
	return updated, nil
}

// Link connects a parent to a student, then refreshes the student record
// so both sides of the relation are current locally.
func (s *UserService) Link(ctx context.Context, studentID string, data models.LinkGuardianData) (models.User, error) {
	if err := validID(studentID); err != nil {
		return models.User{}, err
	}
	if err := s.validator.Struct(data); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if err := s.client.LinkGuardian(ctx, studentID, data.GuardianID); err != nil {
		return models.User{}, err
	}

	student, err := s.client.GetUser(ctx, studentID)
	if err != nil {
		return models.User{}, err
	}
	s.store.ApplyUpdate(student)
	return student, nil
}

// Unlink disconnects a parent from a student and refreshes the student
// record.
func (s *UserService) Unlink(ctx context.Context, studentID, guardianID string) (models.User, error) {
	if err := validID(studentID); err != nil {
		return models.User{}, err
	}
	if err := validID(guardianID); err != nil {
		return models.User{}, err
	}

	if err := s.client.UnlinkGuardian(ctx, studentID, guardianID); err != nil {
		return models.User{}, err
	}

	student, err := s.client.GetUser(ctx, studentID)
	if err != nil {
		return models.User{}, err
	}
	s.store.ApplyUpdate(student)
	return student, nil
}

// Dialog state passthroughs for the detail view.
func (s *UserService) OpenDialog(id string) *models.User { return s.store.OpenDialog(id) }
func (s *UserService) Dialog() *models.User              { return s.store.Dialog() }
func (s *UserService) CloseDialog()                      { s.store.CloseDialog() }

// LastError exposes the store's refresh error for list views.
func (s *UserService) LastError() string { return s.store.LastError() }

// Loading exposes the store's loading flag.
func (s *UserService) Loading() bool { return s.store.Loading() }

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type mockAuthClient struct {
	creds    models.Credentials
	loginErr error
	me       models.User
	meErr    error
}

func (m *mockAuthClient) Login(context.Context, models.LoginCredentials) (models.Credentials, error) {
	if m.loginErr != nil {
		return models.Credentials{}, m.loginErr
	}
	return m.creds, nil
}

func (m *mockAuthClient) Me(context.Context) (models.User, error) {
	return m.me, m.meErr
}

type mockCredStore struct {
	saved   *models.Credentials
	user    models.AdminUser
	userErr error
	cleared bool
	expiry  *time.Time
}

func (m *mockCredStore) Save(_ context.Context, creds models.Credentials) error {
	m.saved = &creds
	return nil
}

func (m *mockCredStore) AdminUser(context.Context) (models.AdminUser, error) {
	if m.userErr != nil {
		return models.AdminUser{}, m.userErr
	}
	return m.user, nil
}

func (m *mockCredStore) Clear(context.Context) error {
	m.cleared = true
	return nil
}

func (m *mockCredStore) TokenExpiry(context.Context) (*time.Time, error) {
	return m.expiry, nil
}

func TestLoginPersistsCredentials(t *testing.T) {
	client := &mockAuthClient{creds: models.Credentials{
		Token: "tok",
		User:  models.AdminUser{ID: "a1", Email: "admin@example.com"},
	}}
	creds := &mockCredStore{}
	svc := NewAuthService(client, creds, nil, nil)

	out, err := svc.Login(context.Background(), models.LoginCredentials{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok", out.Token)
	require.NotNil(t, creds.saved)
	assert.Equal(t, "admin@example.com", creds.saved.User.Email)
}

func TestLoginValidatesInput(t *testing.T) {
	svc := NewAuthService(&mockAuthClient{}, &mockCredStore{}, nil, nil)

	_, err := svc.Login(context.Background(), models.LoginCredentials{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestLogoutSwallowsStorageError(t *testing.T) {
	creds := &mockCredStore{}
	svc := NewAuthService(&mockAuthClient{}, creds, nil, nil)

	svc.Logout(context.Background())
	assert.True(t, creds.cleared)
}

func TestMeReturnsStoredProfile(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	creds := &mockCredStore{
		user:   models.AdminUser{ID: "a1", Email: "admin@example.com"},
		expiry: &exp,
	}
	svc := NewAuthService(&mockAuthClient{meErr: errors.New("unreachable")}, creds, nil, nil)

	// Profile serving never touches the network.
	info, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1", info.User.ID)
	assert.True(t, info.TokenSet)
	require.NotNil(t, info.ExpiresAt)
	assert.WithinDuration(t, exp, *info.ExpiresAt, time.Second)
}

func TestMeWithoutCredentials(t *testing.T) {
	creds := &mockCredStore{userErr: appErrors.ErrNoAuthToken}
	svc := NewAuthService(&mockAuthClient{}, creds, nil, nil)

	_, err := svc.Me(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoAuthToken))
}

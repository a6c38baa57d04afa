// Package credentials persists the console operator's bearer token and
// profile between restarts. The token is read fresh on every platform
// call, so logging out takes effect immediately.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/mathcode/tutor-admin-api/internal/models"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

const (
	tokenKey = "admin:token"
	userKey  = "admin:user"
)

// kv is the minimal key-value surface the store needs. Satisfied by redis
// in production and by a map in tests.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

type redisKV struct {
	client *redis.Client
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Store holds the operator credentials.
type Store struct {
	kv kv
}

// NewStore builds a redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{kv: &redisKV{client: client}}
}

func newStoreWithKV(store kv) *Store {
	return &Store{kv: store}
}

// Save persists a successful login.
func (s *Store) Save(ctx context.Context, creds models.Credentials) error {
	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("marshal admin user: %w", err)
	}

	if err := s.kv.Set(ctx, tokenKey, creds.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.kv.Set(ctx, userKey, string(userJSON)); err != nil {
		return fmt.Errorf("persist admin user: %w", err)
	}

	return nil
}

// Token returns the persisted bearer token. A missing token is an
// authentication error, raised before any network traffic.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", appErrors.ErrNoAuthToken
	}
	return token, nil
}

// AdminUser returns the persisted operator profile.
func (s *Store) AdminUser(ctx context.Context) (models.AdminUser, error) {
	raw, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("read admin user: %w", err)
	}
	if raw == "" {
		return models.AdminUser{}, appErrors.ErrNoAuthToken
	}

	var user models.AdminUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.AdminUser{}, fmt.Errorf("decode admin user: %w", err)
	}
	return user, nil
}

// Clear removes the persisted credentials. Logout must succeed locally
// even when the backend is unreachable, so errors are returned but the
// caller may ignore them.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Del(ctx, tokenKey, userKey)
}

// TokenExpiry peeks at the token's exp claim without verifying the
// signature. Verification belongs to the platform backend; this value is
// informational only.
func (s *Store) TokenExpiry(ctx context.Context) (*time.Time, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}

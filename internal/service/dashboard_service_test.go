package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/store"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type mockDashboardClient struct {
	stats models.DashboardStats
	err   error
	calls int
}

func (m *mockDashboardClient) FetchDashboard(context.Context) (models.DashboardStats, error) {
	m.calls++
	if m.err != nil {
		return models.DashboardStats{}, m.err
	}
	return m.stats, nil
}

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func newDashboardService(client *mockDashboardClient, cache dashboardCache) (*DashboardService, *store.UserStore, *store.PackageStore, *store.SessionStore) {
	users := store.NewUserStore()
	packages := store.NewPackageStore()
	sessions := store.NewSessionStore()
	svc := NewDashboardService(client, cache, users, packages, sessions, time.Minute, nil, nil)
	return svc, users, packages, sessions
}

func TestDashboardCacheMissFetchesAndCaches(t *testing.T) {
	client := &mockDashboardClient{stats: models.DashboardStats{TotalStudents: 42}}
	cache := newMemoryCache()
	svc, _, _, _ := newDashboardService(client, cache)

	view, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, view.Stats.TotalStudents)
	assert.False(t, view.ServedFromHit)
	assert.Equal(t, 1, client.calls)

	again, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, again.ServedFromHit)
	assert.Equal(t, 1, client.calls, "second read must come from cache")
}

func TestDashboardIncludesLiveStoreCounts(t *testing.T) {
	client := &mockDashboardClient{}
	svc, users, packages, sessions := newDashboardService(client, newMemoryCache())

	users.Replace([]models.User{{ID: "u1"}, {ID: "u2"}})
	packages.Replace([]models.Package{
		{ID: "p1", Status: models.PackageStatusApproved},
		{ID: "p2", Status: models.PackageStatusScheduled},
		{ID: "p3", Status: models.PackageStatusCancelled},
	})
	sessions.Replace([]models.Session{{ID: "s1"}})

	view, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, view.CachedUsers)
	assert.Equal(t, 2, view.CachedPkgs)
	assert.Equal(t, 1, view.CachedSess)
}

func TestDashboardWorksWithoutCache(t *testing.T) {
	client := &mockDashboardClient{stats: models.DashboardStats{TotalTutors: 3}}
	svc, _, _, _ := newDashboardService(client, nil)

	view, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, view.Stats.TotalTutors)
	assert.False(t, view.ServedFromHit)
}

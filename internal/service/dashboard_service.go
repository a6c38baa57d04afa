package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/store"
)

const dashboardCacheKey = "dashboard:stats"

type dashboardClient interface {
	FetchDashboard(ctx context.Context) (models.DashboardStats, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardView combines the cached platform counters with live local
// store counts.
type DashboardView struct {
	Stats         models.DashboardStats `json:"stats"`
	CachedUsers   int                   `json:"cached_users"`
	CachedPkgs    int                   `json:"cached_packages"`
	CachedSess    int                   `json:"cached_sessions"`
	ServedFromHit bool                  `json:"-"`
}

// DashboardService serves the overview snapshot, cache-aside with TTL.
type DashboardService struct {
	client   dashboardClient
	cache    dashboardCache
	users    *store.UserStore
	packages *store.PackageStore
	sessions *store.SessionStore
	ttl      time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewDashboardService constructs the service. cache and metrics may be
// nil.
func NewDashboardService(client dashboardClient, cache dashboardCache, users *store.UserStore, packages *store.PackageStore, sessions *store.SessionStore, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		client:   client,
		cache:    cache,
		users:    users,
		packages: packages,
		sessions: sessions,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
	}
}

// Overview returns the dashboard snapshot. Platform counters are cached;
// local store counts are always live.
func (s *DashboardService) Overview(ctx context.Context) (DashboardView, error) {
	var stats models.DashboardStats
	hit := false

	if s.cache != nil {
		if err := s.cache.Get(ctx, dashboardCacheKey, &stats); err == nil {
			hit = true
		}
	}
	s.metrics.RecordCacheLookup(hit)

	if !hit {
		fetched, err := s.client.FetchDashboard(ctx)
		if err != nil {
			return DashboardView{}, err
		}
		stats = fetched

		if s.cache != nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.ttl); err != nil {
				s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	return DashboardView{
		Stats:         stats,
		CachedUsers:   s.users.Count(),
		CachedPkgs:    s.packages.CountByStatus(models.PackageStatusApproved) + s.packages.CountByStatus(models.PackageStatusScheduled),
		CachedSess:    s.sessions.Count(),
		ServedFromHit: hit,
	}, nil
}

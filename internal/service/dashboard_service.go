package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// StatsCache keeps a recently computed dashboard snapshot per day.
type StatsCache interface {
	Get(ctx context.Context, day time.Time) (*repository.DashboardStats, bool, error)
	Set(ctx context.Context, day time.Time, stats *repository.DashboardStats) error
	Invalidate(ctx context.Context, day time.Time) error
}

// StatsInvalidator is told about writes that change the dashboard figures.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type DashboardService struct {
	statsRepo StatsStore
	cache     StatsCache
	log       zerolog.Logger
	now       func() time.Time
}

// NewDashboardService accepts a nil cache; stats are then computed on every call.
func NewDashboardService(statsRepo StatsStore, cache StatsCache, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		statsRepo: statsRepo,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

func (s *DashboardService) Stats(ctx context.Context, principal model.Principal) (*repository.DashboardStats, error) {
	if !principal.IsStaff() {
		return nil, ErrPermissionDenied
	}

	day := startOfDay(s.now())
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, day)
		if err != nil {
			s.log.Warn().Err(err).Msg("dashboard stats cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	stats, err := s.statsRepo.Dashboard(ctx, day)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, day, stats); err != nil {
			s.log.Warn().Err(err).Msg("dashboard stats cache write failed")
		}
	}
	return stats, nil
}

// Invalidate drops today's snapshot. Failures are logged; the TTL bounds
// how long a stale snapshot can survive.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, startOfDay(s.now())); err != nil {
		s.log.Warn().Err(err).Msg("dashboard stats cache invalidation failed")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

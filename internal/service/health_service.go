package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/cache"
	"teampulse/internal/model"
	"teampulse/internal/repository"
)

// HealthService computes team health snapshots: the arithmetic mean of
// members' latest signals plus per-color counts. Snapshots are cached with a
// short TTL and recomputed on miss.
type HealthService struct {
	members     repository.MemberRepo
	signals     repository.SignalRepo
	signalCache cache.SignalCache
	healthCache cache.HealthCache
	log         *zap.Logger
}

// NewHealthService creates a new health service
func NewHealthService(
	members repository.MemberRepo,
	signals repository.SignalRepo,
	signalCache cache.SignalCache,
	healthCache cache.HealthCache,
	log *zap.Logger,
) *HealthService {
	return &HealthService{
		members:     members,
		signals:     signals,
		signalCache: signalCache,
		healthCache: healthCache,
		log:         log,
	}
}

// Snapshot returns the team's current health aggregate, from cache when
// fresh. Members without any recorded signal are excluded from the average.
func (s *HealthService) Snapshot(ctx context.Context, teamID string) (*model.TeamHealth, error) {
	if cached, err := s.healthCache.Get(ctx, teamID); err == nil && cached != nil {
		return cached, nil
	}

	members, err := s.members.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	health := &model.TeamHealth{
		TeamID:      teamID,
		ColorCounts: make(map[model.PerformanceColor]int),
		GeneratedAt: time.Now(),
	}

	var sum int
	for _, member := range members {
		signal, err := s.latestSignal(ctx, member.ID)
		if err != nil {
			s.log.Warn("failed to load latest signal for snapshot",
				zap.String("memberId", member.ID), zap.Error(err))
			continue
		}
		if signal == nil {
			continue
		}
		health.MemberCount++
		sum += signal.Value
		health.ColorCounts[signal.PerformanceColor]++
	}

	if health.MemberCount > 0 {
		avg := float64(sum) / float64(health.MemberCount)
		health.AverageSignal = math.Round(avg*100) / 100
	}

	if err := s.healthCache.Set(ctx, health); err != nil {
		s.log.Warn("failed to cache team health", zap.String("teamId", teamID), zap.Error(err))
	}

	return health, nil
}

func (s *HealthService) latestSignal(ctx context.Context, memberID string) (*model.Signal, error) {
	cached, err := s.signalCache.GetLatest(ctx, memberID)
	if err == nil && cached != nil {
		return cached, nil
	}
	return s.signals.LatestByMember(ctx, memberID)
}

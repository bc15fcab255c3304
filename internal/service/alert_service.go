package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/cache"
	"teampulse/internal/metrics"
	"teampulse/internal/model"
	"teampulse/internal/repository"
)

// AlertService scans latest signals for members in trouble. A latest value
// below 3 flags high severity, a value of 0 flags critical. Members with no
// recorded signal yet are skipped.
type AlertService struct {
	members     repository.MemberRepo
	signals     repository.SignalRepo
	signalCache cache.SignalCache
	notifier    Notifier
	broadcaster Broadcaster
	log         *zap.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(
	members repository.MemberRepo,
	signals repository.SignalRepo,
	signalCache cache.SignalCache,
	notifier Notifier,
	log *zap.Logger,
) *AlertService {
	return &AlertService{
		members:     members,
		signals:     signals,
		signalCache: signalCache,
		notifier:    notifier,
		log:         log,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *AlertService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Scan checks every member of a team (or all members when teamID is empty)
// and returns the alerts raised. Flagged members are notified best-effort.
func (s *AlertService) Scan(ctx context.Context, teamID string) ([]model.Alert, error) {
	var members []*model.Member
	var err error
	if teamID != "" {
		members, err = s.members.ListByTeam(ctx, teamID)
	} else {
		members, err = s.members.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	alerts := []model.Alert{}
	now := time.Now()
	for _, member := range members {
		signal, err := s.latestSignal(ctx, member.ID)
		if err != nil {
			s.log.Warn("failed to load latest signal during scan",
				zap.String("memberId", member.ID), zap.Error(err))
			continue
		}
		if signal == nil {
			continue
		}

		var level model.Severity
		switch {
		case signal.Value == 0:
			level = model.SeverityCritical
		case signal.Value < 3:
			level = model.SeverityHigh
		default:
			continue
		}

		alert := model.Alert{
			MemberID:    member.ID,
			MemberName:  member.Name,
			SignalValue: signal.Value,
			Level:       level,
			FlaggedAt:   now,
		}
		alerts = append(alerts, alert)
		s.notifyAlert(ctx, member, alert)
	}

	return alerts, nil
}

// latestSignal reads through the cache with a store fallback
func (s *AlertService) latestSignal(ctx context.Context, memberID string) (*model.Signal, error) {
	cached, err := s.signalCache.GetLatest(ctx, memberID)
	if err == nil && cached != nil {
		return cached, nil
	}
	return s.signals.LatestByMember(ctx, memberID)
}

func (s *AlertService) notifyAlert(ctx context.Context, member *model.Member, alert model.Alert) {
	payload := map[string]interface{}{
		"memberId":    member.ID,
		"memberName":  member.Name,
		"signalValue": alert.SignalValue,
		"level":       string(alert.Level),
	}

	if _, err := s.notifier.Notify(ctx, TemplatePerformanceAlert, member.Email, payload); err != nil {
		s.log.Warn("alert notification failed",
			zap.String("memberId", member.ID), zap.Error(err))
		metrics.NotificationFailures.Inc()
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTeam(member.TeamID, "performance_alert", payload)
	}
}

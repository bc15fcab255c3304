package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/metrics"
	"teampulse/internal/repository"
)

// DispatchService sends recurring survey invitations. A survey is due when
// now - lastSentAt >= intervalDays * 86400s; a never-sent survey (zero
// lastSentAt) is always due.
type DispatchService struct {
	surveys  repository.SurveyRepo
	members  repository.MemberRepo
	notifier Notifier
	log      *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	surveys repository.SurveyRepo,
	members repository.MemberRepo,
	notifier Notifier,
	log *zap.Logger,
) *DispatchService {
	return &DispatchService{
		surveys:  surveys,
		members:  members,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// DispatchDue sends invitations for every recurring survey whose interval
// has elapsed and stamps lastSentAt. Returns the ids of dispatched surveys.
func (s *DispatchService) DispatchDue(ctx context.Context) ([]string, error) {
	surveys, err := s.surveys.ListRecurring(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var dispatched []string
	for _, survey := range surveys {
		if survey.IntervalDays <= 0 {
			continue
		}
		interval := time.Duration(survey.IntervalDays) * 24 * time.Hour
		if !survey.LastSentAt.IsZero() && now.Sub(survey.LastSentAt) < interval {
			continue
		}

		members, err := s.members.ListByTeam(ctx, survey.TeamID)
		if err != nil {
			s.log.Warn("failed to list team members for dispatch",
				zap.String("surveyId", survey.ID), zap.Error(err))
			continue
		}

		sent := 0
		for _, member := range members {
			payload := map[string]interface{}{
				"surveyId":    survey.ID,
				"surveyTitle": survey.Title,
				"memberName":  member.Name,
			}
			if _, err := s.notifier.Notify(ctx, TemplateSurveyInvite, member.Email, payload); err != nil {
				s.log.Warn("survey invite failed",
					zap.String("surveyId", survey.ID),
					zap.String("memberId", member.ID),
					zap.Error(err))
				metrics.NotificationFailures.Inc()
				continue
			}
			sent++
		}

		if err := s.surveys.MarkSent(ctx, survey.ID, now); err != nil {
			s.log.Error("failed to stamp lastSentAt",
				zap.String("surveyId", survey.ID), zap.Error(err))
			continue
		}

		dispatched = append(dispatched, survey.ID)
		s.log.Info("recurring survey dispatched",
			zap.String("surveyId", survey.ID),
			zap.Int("invites", sent))
	}

	return dispatched, nil
}

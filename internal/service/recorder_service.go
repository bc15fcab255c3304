package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teampulse/internal/cache"
	"teampulse/internal/metrics"
	"teampulse/internal/model"
	"teampulse/internal/repository"
)

// RecorderService performs the side effects of a completed analysis: one
// Insight and one Signal write, a latest-signal cache refresh, and a
// best-effort completion notification. Not idempotent; callers invoke it at
// most once per response set.
type RecorderService struct {
	insights    repository.InsightRepo
	signals     repository.SignalRepo
	members     repository.MemberRepo
	signalCache cache.SignalCache
	notifier    Notifier
	broadcaster Broadcaster
	log         *zap.Logger
}

// NewRecorderService creates a new recorder service
func NewRecorderService(
	insights repository.InsightRepo,
	signals repository.SignalRepo,
	members repository.MemberRepo,
	signalCache cache.SignalCache,
	notifier Notifier,
	log *zap.Logger,
) *RecorderService {
	return &RecorderService{
		insights:    insights,
		signals:     signals,
		members:     members,
		signalCache: signalCache,
		notifier:    notifier,
		log:         log,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *RecorderService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RecordResult carries the ids of the two records written for one analysis
type RecordResult struct {
	InsightID string `json:"insightId"`
	SignalID  string `json:"signalId"`
}

// Record writes the Insight and Signal derived 1:1 from the analysis, then
// notifies. Store failures abort and surface as ErrStoreUnavailable;
// notification failures are logged and absorbed.
func (s *RecorderService) Record(ctx context.Context, subjectID string, kind model.SourceKind, sourceID string, result model.AnalyzerResult) (*RecordResult, error) {
	if subjectID == "" || sourceID == "" {
		return nil, fmt.Errorf("%w: missing subjectId or sourceId", ErrInvalidInput)
	}

	now := time.Now()
	a := result.Analysis

	insight := &model.Insight{
		ID:          uuid.New().String(),
		MemberID:    subjectID,
		Source:      kind,
		SourceID:    sourceID,
		Title:       insightTitle(kind, a.Color),
		Description: a.Summary,
		Severity:    a.Severity,
		ActionItems: a.ActionItems,
		CreatedAt:   now,
	}
	if err := s.insights.Insert(ctx, insight); err != nil {
		return nil, fmt.Errorf("%w: insight insert: %v", ErrStoreUnavailable, err)
	}

	signal := &model.Signal{
		ID:               uuid.New().String(),
		MemberID:         subjectID,
		SignalType:       signalTypeFor(kind),
		Value:            a.Score,
		SourceID:         sourceID,
		PerformanceColor: a.Color,
		CreatedAt:        now,
	}
	if err := s.signals.Insert(ctx, signal); err != nil {
		return nil, fmt.Errorf("%w: signal insert: %v", ErrStoreUnavailable, err)
	}
	metrics.SignalsRecorded.WithLabelValues(string(signal.SignalType)).Inc()

	if err := s.signalCache.SetLatest(ctx, signal); err != nil {
		// Cache refresh is best-effort; reads fall back to the store
		s.log.Warn("failed to refresh latest signal cache",
			zap.String("memberId", subjectID), zap.Error(err))
	}

	s.notifyCompletion(ctx, subjectID, a, result.Provenance)

	s.log.Info("analysis recorded",
		zap.String("memberId", subjectID),
		zap.String("sourceKind", string(kind)),
		zap.String("sourceId", sourceID),
		zap.String("color", string(a.Color)),
		zap.Int("score", a.Score),
		zap.String("provenance", string(result.Provenance)))

	return &RecordResult{InsightID: insight.ID, SignalID: signal.ID}, nil
}

// notifyCompletion sends the completion email and dashboard event. Failures
// are counted and logged, never propagated.
func (s *RecorderService) notifyCompletion(ctx context.Context, subjectID string, a model.SignalAnalysis, provenance model.Provenance) {
	member, err := s.members.GetByID(ctx, subjectID)
	if err != nil || member == nil {
		s.log.Warn("skipping completion notification, member lookup failed",
			zap.String("memberId", subjectID), zap.Error(err))
		metrics.NotificationFailures.Inc()
		return
	}

	payload := map[string]interface{}{
		"memberId": subjectID,
		"summary":  a.Summary,
		"color":    string(a.Color),
		"score":    a.Score,
	}

	if _, err := s.notifier.Notify(ctx, TemplateAnalysisComplete, member.Email, payload); err != nil {
		s.log.Warn("completion notification failed",
			zap.String("memberId", subjectID), zap.Error(err))
		metrics.NotificationFailures.Inc()
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTeam(member.TeamID, "analysis_completed", map[string]interface{}{
			"memberId":   subjectID,
			"color":      string(a.Color),
			"score":      a.Score,
			"summary":    a.Summary,
			"provenance": string(provenance),
		})
	}
}

func insightTitle(kind model.SourceKind, color model.PerformanceColor) string {
	switch kind {
	case model.SourceMeeting:
		return fmt.Sprintf("Meeting analysis: %s", color)
	default:
		return fmt.Sprintf("Survey analysis: %s", color)
	}
}

func signalTypeFor(kind model.SourceKind) model.SignalType {
	if kind == model.SourceMeeting {
		return model.SignalMeeting
	}
	return model.SignalSurveySatisfaction
}

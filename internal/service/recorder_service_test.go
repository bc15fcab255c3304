package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teampulse/internal/model"
)

func testAnalysis() model.AnalyzerResult {
	return model.AnalyzerResult{
		Analysis: model.SignalAnalysis{
			Color:       model.ColorYellow,
			Severity:    model.SeverityMedium,
			Score:       6,
			Summary:     "Good performance with some areas needing attention",
			ActionItems: []string{"Schedule follow-up 1:1 to discuss concerns"},
		},
		Provenance: model.ProvenanceDeterministic,
	}
}

type recorderFixture struct {
	insights    *fakeInsightRepo
	signals     *fakeSignalRepo
	members     *fakeMemberRepo
	signalCache *fakeSignalCache
	notifier    *fakeNotifier
	broadcaster *fakeBroadcaster
	svc         *RecorderService
}

func newRecorderFixture() *recorderFixture {
	f := &recorderFixture{
		insights:    &fakeInsightRepo{},
		signals:     &fakeSignalRepo{},
		members:     &fakeMemberRepo{members: []*model.Member{{ID: "member_1", TeamID: "team_1", Name: "Dana", Email: "dana@example.com"}}},
		signalCache: newFakeSignalCache(),
		notifier:    &fakeNotifier{},
		broadcaster: &fakeBroadcaster{},
	}
	f.svc = NewRecorderService(f.insights, f.signals, f.members, f.signalCache, f.notifier, zap.NewNop())
	f.svc.SetBroadcaster(f.broadcaster)
	return f
}

func TestRecordWritesOneInsightAndOneSignal(t *testing.T) {
	f := newRecorderFixture()

	result, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", testAnalysis())
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if len(f.insights.insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(f.insights.insights))
	}
	if len(f.signals.signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(f.signals.signals))
	}

	insight := f.insights.insights[0]
	if insight.ID != result.InsightID {
		t.Error("returned insight id does not match the written record")
	}
	if insight.MemberID != "member_1" || insight.Source != model.SourceSurvey || insight.SourceID != "survey_1" {
		t.Errorf("unexpected insight: %+v", insight)
	}
	if insight.Severity != model.SeverityMedium || len(insight.ActionItems) == 0 {
		t.Errorf("insight must carry severity and action items: %+v", insight)
	}

	signal := f.signals.signals[0]
	if signal.ID != result.SignalID {
		t.Error("returned signal id does not match the written record")
	}
	if signal.Value != 6 || signal.PerformanceColor != model.ColorYellow {
		t.Errorf("unexpected signal: %+v", signal)
	}
	if signal.SignalType != model.SignalSurveySatisfaction {
		t.Errorf("signalType = %s, want survey_satisfaction", signal.SignalType)
	}

	// Latest-signal cache refreshed
	if cached := f.signalCache.latest["member_1"]; cached == nil || cached.ID != signal.ID {
		t.Error("expected latest signal cache refresh")
	}

	// Completion notification and dashboard event
	if len(f.notifier.calls) != 1 || f.notifier.calls[0].templateID != TemplateAnalysisComplete {
		t.Errorf("expected one analysis_complete notification, got %+v", f.notifier.calls)
	}
	if f.notifier.calls[0].recipient != "dana@example.com" {
		t.Errorf("notification sent to %q", f.notifier.calls[0].recipient)
	}
	if len(f.broadcaster.events) != 1 || f.broadcaster.events[0].teamID != "team_1" {
		t.Errorf("expected one team broadcast, got %+v", f.broadcaster.events)
	}
}

func TestRecordMeetingSignalType(t *testing.T) {
	f := newRecorderFixture()

	if _, err := f.svc.Record(context.Background(), "member_1", model.SourceMeeting, "meeting_1", testAnalysis()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if f.signals.signals[0].SignalType != model.SignalMeeting {
		t.Errorf("signalType = %s, want meeting", f.signals.signals[0].SignalType)
	}
}

// Record is deliberately not idempotent: two calls append two rows each.
func TestRecordNotIdempotent(t *testing.T) {
	f := newRecorderFixture()

	analysis := testAnalysis()
	first, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", analysis)
	if err != nil {
		t.Fatalf("first Record() error = %v", err)
	}
	second, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", analysis)
	if err != nil {
		t.Fatalf("second Record() error = %v", err)
	}

	if len(f.insights.insights) != 2 || len(f.signals.signals) != 2 {
		t.Errorf("expected 2 insights and 2 signals, got %d/%d",
			len(f.insights.insights), len(f.signals.signals))
	}
	if first.InsightID == second.InsightID || first.SignalID == second.SignalID {
		t.Error("each Record call must create fresh records")
	}
}

func TestRecordStoreFailures(t *testing.T) {
	f := newRecorderFixture()
	f.insights.insertErr = errStoreDown

	_, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", testAnalysis())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable on insight failure, got %v", err)
	}
	if len(f.signals.signals) != 0 {
		t.Error("signal must not be written when the insight write fails")
	}

	f = newRecorderFixture()
	f.signals.insertErr = errStoreDown
	_, err = f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", testAnalysis())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable on signal failure, got %v", err)
	}
}

// Notification failures are absorbed, never returned to the caller.
func TestRecordNotificationFailureIsBestEffort(t *testing.T) {
	f := newRecorderFixture()
	f.notifier.err = errors.New("smtp down")

	result, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", testAnalysis())
	if err != nil {
		t.Fatalf("Record() must not fail on notification error, got %v", err)
	}
	if result.InsightID == "" || result.SignalID == "" {
		t.Error("writes must complete despite notification failure")
	}
	if len(f.insights.insights) != 1 || len(f.signals.signals) != 1 {
		t.Error("both records must persist despite notification failure")
	}
}

func TestRecordCacheFailureIsBestEffort(t *testing.T) {
	f := newRecorderFixture()
	f.signalCache.setErr = errors.New("redis down")

	if _, err := f.svc.Record(context.Background(), "member_1", model.SourceSurvey, "survey_1", testAnalysis()); err != nil {
		t.Fatalf("Record() must not fail on cache error, got %v", err)
	}
}

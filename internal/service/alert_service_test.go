package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/model"
)

func signalFor(memberID string, value int, color model.PerformanceColor) *model.Signal {
	return &model.Signal{
		ID:               "sig_" + memberID,
		MemberID:         memberID,
		SignalType:       model.SignalSurveySatisfaction,
		Value:            value,
		PerformanceColor: color,
		CreatedAt:        time.Now(),
	}
}

func TestScanFlagsLowSignals(t *testing.T) {
	members := &fakeMemberRepo{members: []*model.Member{
		{ID: "m_ok", TeamID: "team_1", Name: "Ana", Email: "ana@example.com"},
		{ID: "m_low", TeamID: "team_1", Name: "Ben", Email: "ben@example.com"},
		{ID: "m_zero", TeamID: "team_1", Name: "Cruz", Email: "cruz@example.com"},
		{ID: "m_new", TeamID: "team_1", Name: "Drew", Email: "drew@example.com"},
	}}
	signals := &fakeSignalRepo{signals: []*model.Signal{
		signalFor("m_ok", 8, model.ColorGreen),
		signalFor("m_low", 2, model.ColorRed),
		signalFor("m_zero", 0, model.ColorRed),
		// m_new has no signal yet and must be skipped
	}}
	notifier := &fakeNotifier{}
	broadcaster := &fakeBroadcaster{}

	svc := NewAlertService(members, signals, newFakeSignalCache(), notifier, zap.NewNop())
	svc.SetBroadcaster(broadcaster)

	alerts, err := svc.Scan(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %+v", len(alerts), alerts)
	}

	byMember := map[string]model.Alert{}
	for _, a := range alerts {
		byMember[a.MemberID] = a
	}
	if byMember["m_low"].Level != model.SeverityHigh {
		t.Errorf("value 2 should flag high, got %s", byMember["m_low"].Level)
	}
	if byMember["m_zero"].Level != model.SeverityCritical {
		t.Errorf("value 0 should flag critical, got %s", byMember["m_zero"].Level)
	}
	if byMember["m_low"].MemberName != "Ben" || byMember["m_low"].SignalValue != 2 {
		t.Errorf("unexpected alert: %+v", byMember["m_low"])
	}

	// One notification and one broadcast per flagged member
	if len(notifier.calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.calls))
	}
	for _, c := range notifier.calls {
		if c.templateID != TemplatePerformanceAlert {
			t.Errorf("notification used template %s", c.templateID)
		}
	}
	if len(broadcaster.events) != 2 || broadcaster.events[0].event != "performance_alert" {
		t.Errorf("unexpected broadcasts: %+v", broadcaster.events)
	}
}

// Value 3 sits exactly on the threshold and is not flagged.
func TestScanThresholdBoundary(t *testing.T) {
	members := &fakeMemberRepo{members: []*model.Member{
		{ID: "m_edge", TeamID: "team_1", Name: "Edge", Email: "edge@example.com"},
	}}
	signals := &fakeSignalRepo{signals: []*model.Signal{
		signalFor("m_edge", 3, model.ColorYellow),
	}}

	svc := NewAlertService(members, signals, newFakeSignalCache(), &fakeNotifier{}, zap.NewNop())
	alerts, err := svc.Scan(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("value 3 must not be flagged, got %+v", alerts)
	}
}

func TestScanPrefersCachedSignal(t *testing.T) {
	members := &fakeMemberRepo{members: []*model.Member{
		{ID: "m_1", TeamID: "team_1", Name: "Ana", Email: "ana@example.com"},
	}}
	// Store says fine, cache says critical: the cache is the fresher read
	signals := &fakeSignalRepo{signals: []*model.Signal{
		signalFor("m_1", 8, model.ColorGreen),
	}}
	signalCache := newFakeSignalCache()
	signalCache.latest["m_1"] = signalFor("m_1", 0, model.ColorRed)

	svc := NewAlertService(members, signals, signalCache, &fakeNotifier{}, zap.NewNop())
	alerts, err := svc.Scan(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(alerts) != 1 || alerts[0].Level != model.SeverityCritical {
		t.Errorf("expected critical alert from cached signal, got %+v", alerts)
	}
}

func TestScanAllTeamsWhenUnscoped(t *testing.T) {
	members := &fakeMemberRepo{members: []*model.Member{
		{ID: "m_a", TeamID: "team_a", Name: "Ana", Email: "ana@example.com"},
		{ID: "m_b", TeamID: "team_b", Name: "Ben", Email: "ben@example.com"},
	}}
	signals := &fakeSignalRepo{signals: []*model.Signal{
		signalFor("m_a", 1, model.ColorRed),
		signalFor("m_b", 2, model.ColorRed),
	}}

	svc := NewAlertService(members, signals, newFakeSignalCache(), &fakeNotifier{}, zap.NewNop())
	alerts, err := svc.Scan(context.Background(), "")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(alerts) != 2 {
		t.Errorf("unscoped scan should cover all teams, got %d alerts", len(alerts))
	}
}

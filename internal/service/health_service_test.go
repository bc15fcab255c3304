package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/model"
)

func newHealthFixture(members []*model.Member, signals []*model.Signal) (*HealthService, *fakeHealthCache) {
	healthCache := newFakeHealthCache()
	svc := NewHealthService(
		&fakeMemberRepo{members: members},
		&fakeSignalRepo{signals: signals},
		newFakeSignalCache(),
		healthCache,
		zap.NewNop(),
	)
	return svc, healthCache
}

func TestSnapshotAggregates(t *testing.T) {
	members := []*model.Member{
		{ID: "m_1", TeamID: "team_1", Name: "Ana"},
		{ID: "m_2", TeamID: "team_1", Name: "Ben"},
		{ID: "m_3", TeamID: "team_1", Name: "Cruz"},
		{ID: "m_new", TeamID: "team_1", Name: "Drew"}, // no signal yet
	}
	signals := []*model.Signal{
		signalFor("m_1", 8, model.ColorGreen),
		signalFor("m_2", 6, model.ColorYellow),
		signalFor("m_3", 8, model.ColorGreen),
	}

	svc, _ := newHealthFixture(members, signals)
	health, err := svc.Snapshot(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if health.TeamID != "team_1" {
		t.Errorf("teamId = %s", health.TeamID)
	}
	// Drew is excluded from both the count and the average
	if health.MemberCount != 3 {
		t.Errorf("memberCount = %d, want 3", health.MemberCount)
	}
	if health.AverageSignal != 7.33 {
		t.Errorf("averageSignal = %v, want 7.33", health.AverageSignal)
	}
	if health.ColorCounts[model.ColorGreen] != 2 || health.ColorCounts[model.ColorYellow] != 1 {
		t.Errorf("colorCounts = %+v", health.ColorCounts)
	}
	if health.ColorCounts[model.ColorRed] != 0 {
		t.Errorf("unexpected red count: %+v", health.ColorCounts)
	}
}

func TestSnapshotEmptyTeam(t *testing.T) {
	svc, _ := newHealthFixture([]*model.Member{
		{ID: "m_new", TeamID: "team_1", Name: "Drew"},
	}, nil)

	health, err := svc.Snapshot(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if health.MemberCount != 0 || health.AverageSignal != 0 {
		t.Errorf("team with no signals should report zero aggregate: %+v", health)
	}
}

func TestSnapshotServesFromCache(t *testing.T) {
	svc, healthCache := newHealthFixture([]*model.Member{
		{ID: "m_1", TeamID: "team_1", Name: "Ana"},
	}, []*model.Signal{
		signalFor("m_1", 8, model.ColorGreen),
	})

	cached := &model.TeamHealth{
		TeamID:        "team_1",
		AverageSignal: 5.5,
		MemberCount:   9,
		ColorCounts:   map[model.PerformanceColor]int{model.ColorYellow: 9},
		GeneratedAt:   time.Now(),
	}
	healthCache.snapshots["team_1"] = cached

	health, err := svc.Snapshot(context.Background(), "team_1")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if health != cached {
		t.Error("expected cached snapshot to be returned as-is")
	}
}

func TestSnapshotPopulatesCache(t *testing.T) {
	svc, healthCache := newHealthFixture([]*model.Member{
		{ID: "m_1", TeamID: "team_1", Name: "Ana"},
	}, []*model.Signal{
		signalFor("m_1", 6, model.ColorYellow),
	})

	if _, err := svc.Snapshot(context.Background(), "team_1"); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	stored := healthCache.snapshots["team_1"]
	if stored == nil || stored.AverageSignal != 6 {
		t.Errorf("expected computed snapshot in cache, got %+v", stored)
	}
}

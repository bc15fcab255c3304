package service

import (
	"context"
	"errors"
	"time"

	"teampulse/internal/model"
)

var errStoreDown = errors.New("store down")

type fakeResponseRepo struct {
	sets      []*model.ResponseSet
	insertErr error
}

func (f *fakeResponseRepo) Insert(ctx context.Context, set *model.ResponseSet) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.sets = append(f.sets, set)
	return nil
}

func (f *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.ResponseSet, error) {
	for _, s := range f.sets {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeResponseRepo) ListBySource(ctx context.Context, kind model.SourceKind, sourceID string) ([]*model.ResponseSet, error) {
	var out []*model.ResponseSet
	for _, s := range f.sets {
		if s.SourceKind == kind && s.SourceID == sourceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) ListBySubject(ctx context.Context, subjectID string) ([]*model.ResponseSet, error) {
	var out []*model.ResponseSet
	for _, s := range f.sets {
		if s.SubjectID == subjectID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInsightRepo struct {
	insights  []*model.Insight
	insertErr error
}

func (f *fakeInsightRepo) Insert(ctx context.Context, insight *model.Insight) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insights = append(f.insights, insight)
	return nil
}

func (f *fakeInsightRepo) ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Insight, error) {
	var out []*model.Insight
	for _, i := range f.insights {
		if i.MemberID == memberID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeSignalRepo struct {
	signals   []*model.Signal
	insertErr error
}

func (f *fakeSignalRepo) Insert(ctx context.Context, signal *model.Signal) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.signals = append(f.signals, signal)
	return nil
}

func (f *fakeSignalRepo) LatestByMember(ctx context.Context, memberID string) (*model.Signal, error) {
	var latest *model.Signal
	for _, s := range f.signals {
		if s.MemberID != memberID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest, nil
}

func (f *fakeSignalRepo) ListByMember(ctx context.Context, memberID string, limit int64) ([]*model.Signal, error) {
	var out []*model.Signal
	for _, s := range f.signals {
		if s.MemberID == memberID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members []*model.Member
}

func (f *fakeMemberRepo) Insert(ctx context.Context, member *model.Member) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Member, error) {
	var out []*model.Member
	for _, m := range f.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) ListAll(ctx context.Context) ([]*model.Member, error) {
	return f.members, nil
}

type fakeSurveyRepo struct {
	surveys []*model.Survey
}

func (f *fakeSurveyRepo) Insert(ctx context.Context, survey *model.Survey) error {
	f.surveys = append(f.surveys, survey)
	return nil
}

func (f *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	for _, s := range f.surveys {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSurveyRepo) ListRecurring(ctx context.Context) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range f.surveys {
		if s.Recurring {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	for _, s := range f.surveys {
		if s.ID == id {
			s.LastSentAt = sentAt
			return nil
		}
	}
	return nil
}

type fakeSignalCache struct {
	latest map[string]*model.Signal
	setErr error
}

func newFakeSignalCache() *fakeSignalCache {
	return &fakeSignalCache{latest: make(map[string]*model.Signal)}
}

func (f *fakeSignalCache) GetLatest(ctx context.Context, memberID string) (*model.Signal, error) {
	return f.latest[memberID], nil
}

func (f *fakeSignalCache) SetLatest(ctx context.Context, signal *model.Signal) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.latest[signal.MemberID] = signal
	return nil
}

type fakeHealthCache struct {
	snapshots map[string]*model.TeamHealth
}

func newFakeHealthCache() *fakeHealthCache {
	return &fakeHealthCache{snapshots: make(map[string]*model.TeamHealth)}
}

func (f *fakeHealthCache) Get(ctx context.Context, teamID string) (*model.TeamHealth, error) {
	return f.snapshots[teamID], nil
}

func (f *fakeHealthCache) Set(ctx context.Context, health *model.TeamHealth) error {
	f.snapshots[health.TeamID] = health
	return nil
}

type notifyCall struct {
	templateID string
	recipient  string
	payload    map[string]interface{}
}

type fakeNotifier struct {
	calls []notifyCall
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, templateID, recipient string, payload map[string]interface{}) (string, error) {
	f.calls = append(f.calls, notifyCall{templateID, recipient, payload})
	if f.err != nil {
		return "", f.err
	}
	return "msg_123", nil
}

type broadcastEvent struct {
	teamID string
	event  string
}

type fakeBroadcaster struct {
	events []broadcastEvent
}

func (f *fakeBroadcaster) BroadcastToTeam(teamID string, event string, payload interface{}) {
	f.events = append(f.events, broadcastEvent{teamID, event})
}

type fakeBlobStore struct {
	url string
	err error
}

func (f *fakeBlobStore) GetURL(ctx context.Context, blobID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

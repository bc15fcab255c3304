package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"teampulse/internal/blob"
	"teampulse/internal/model"
)

// PipelineService runs the full collect, analyze, record sequence for one
// external invocation. The three stages are strictly sequential within a
// response set; different response sets share no mutable state and may run
// fully in parallel.
type PipelineService struct {
	collector *CollectorService
	analyzer  *AnalyzerService
	recorder  *RecorderService
	blobs     blob.Store
	log       *zap.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	collector *CollectorService,
	analyzer *AnalyzerService,
	recorder *RecorderService,
	blobs blob.Store,
	log *zap.Logger,
) *PipelineService {
	return &PipelineService{
		collector: collector,
		analyzer:  analyzer,
		recorder:  recorder,
		blobs:     blobs,
		log:       log,
	}
}

// SurveyAnalysisRequest is the survey-path pipeline input
type SurveyAnalysisRequest struct {
	SurveyID  string            `json:"surveyId"`
	MemberID  string            `json:"memberId"`
	TeamID    string            `json:"teamId"`
	Responses []model.RawAnswer `json:"responses"`
}

// MeetingAnalysisRequest is the meeting-path pipeline input
type MeetingAnalysisRequest struct {
	MeetingID    string `json:"meetingId"`
	MemberID     string `json:"memberId"`
	TeamID       string `json:"teamId"`
	RecordingURL string `json:"recordingUrl,omitempty"`
	BlobID       string `json:"blobId,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// AnalysisResponse is the caller-facing pipeline output
type AnalysisResponse struct {
	Analysis      model.SignalAnalysis `json:"analysis"`
	Provenance    model.Provenance     `json:"provenance"`
	SignalValue   int                  `json:"signalValue"`
	ResponseSetID string               `json:"responseSetId"`
	InsightID     string               `json:"insightId"`
	SignalID      string               `json:"signalId"`
}

// AnalyzeSurvey runs the pipeline over submitted survey responses
func (s *PipelineService) AnalyzeSurvey(ctx context.Context, req SurveyAnalysisRequest) (*AnalysisResponse, error) {
	set, err := s.collector.Collect(ctx, model.SourceSurvey, req.SurveyID, req.MemberID, req.Responses)
	if err != nil {
		return nil, err
	}

	result := s.analyzer.Analyze(ctx, model.SourceSurvey, set.Answers)

	recorded, err := s.recorder.Record(ctx, set.SubjectID, set.SourceKind, set.SourceID, result)
	if err != nil {
		return nil, err
	}

	return &AnalysisResponse{
		Analysis:      result.Analysis,
		Provenance:    result.Provenance,
		SignalValue:   result.Analysis.Score,
		ResponseSetID: set.ID,
		InsightID:     recorded.InsightID,
		SignalID:      recorded.SignalID,
	}, nil
}

// AnalyzeMeeting runs the pipeline over a meeting recording reference. The
// recording itself is not transcribed here; the answer set is derived from
// the submitted notes, with the resolved recording URL as a fallback entry.
func (s *PipelineService) AnalyzeMeeting(ctx context.Context, req MeetingAnalysisRequest) (*AnalysisResponse, error) {
	url := req.RecordingURL
	if url == "" && req.BlobID != "" {
		resolved, err := s.blobs.GetURL(ctx, req.BlobID)
		if err != nil {
			// The recording reference is informational only; notes still
			// drive the analysis
			s.log.Warn("failed to resolve recording blob",
				zap.String("blobId", req.BlobID), zap.Error(err))
		} else {
			url = resolved
		}
	}

	answers := meetingAnswers(req.Notes, url)

	set, err := s.collector.Collect(ctx, model.SourceMeeting, req.MeetingID, req.MemberID, answers)
	if err != nil {
		return nil, err
	}

	result := s.analyzer.Analyze(ctx, model.SourceMeeting, set.Answers)

	recorded, err := s.recorder.Record(ctx, set.SubjectID, set.SourceKind, set.SourceID, result)
	if err != nil {
		return nil, err
	}

	return &AnalysisResponse{
		Analysis:      result.Analysis,
		Provenance:    result.Provenance,
		SignalValue:   result.Analysis.Score,
		ResponseSetID: set.ID,
		InsightID:     recorded.InsightID,
		SignalID:      recorded.SignalID,
	}, nil
}

// meetingAnswers derives a text answer set from meeting notes, one answer per
// non-empty line. With no notes at all, a single neutral answer referencing
// the recording keeps the set non-empty for the collector.
func meetingAnswers(notes, recordingURL string) []model.RawAnswer {
	var answers []model.RawAnswer
	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		answers = append(answers, model.RawAnswer{
			QuestionID: fmt.Sprintf("meeting_note_%d", len(answers)+1),
			Type:       model.AnswerTypeText,
			Value:      model.AnswerValue{Text: line},
		})
	}

	if len(answers) == 0 {
		text := "Meeting held, no notes submitted"
		if recordingURL != "" {
			text = "Meeting recording available at " + recordingURL
		}
		answers = append(answers, model.RawAnswer{
			QuestionID: "meeting_recording",
			Type:       model.AnswerTypeText,
			Value:      model.AnswerValue{Text: text},
		})
	}
	return answers
}

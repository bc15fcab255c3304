package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teampulse/internal/model"
	"teampulse/internal/repository"
)

// CollectorService validates and durably persists raw answer sets before any
// analysis runs. Response sets are immutable once written.
type CollectorService struct {
	responses repository.ResponseRepo
	log       *zap.Logger
}

// NewCollectorService creates a new collector service
func NewCollectorService(responses repository.ResponseRepo, log *zap.Logger) *CollectorService {
	return &CollectorService{
		responses: responses,
		log:       log,
	}
}

// Collect validates the submission and inserts one immutable ResponseSet.
// Returns ErrInvalidInput for missing ids, empty answers, or duplicate
// question ids; ErrStoreUnavailable when the insert fails. On error the
// caller must not proceed to analysis.
func (s *CollectorService) Collect(ctx context.Context, kind model.SourceKind, sourceID, subjectID string, answers []model.RawAnswer) (*model.ResponseSet, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("%w: missing sourceId", ErrInvalidInput)
	}
	if subjectID == "" {
		return nil, fmt.Errorf("%w: missing subjectId", ErrInvalidInput)
	}
	if kind != model.SourceSurvey && kind != model.SourceMeeting {
		return nil, fmt.Errorf("%w: unknown source kind %q", ErrInvalidInput, kind)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: answers must not be empty", ErrInvalidInput)
	}

	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if a.QuestionID == "" {
			return nil, fmt.Errorf("%w: answer missing questionId", ErrInvalidInput)
		}
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: duplicate questionId %q", ErrInvalidInput, a.QuestionID)
		}
		seen[a.QuestionID] = true
	}

	set := &model.ResponseSet{
		ID:          uuid.New().String(),
		SubjectID:   subjectID,
		SourceKind:  kind,
		SourceID:    sourceID,
		Answers:     answers,
		SubmittedAt: time.Now(),
	}

	if err := s.responses.Insert(ctx, set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.log.Info("response set collected",
		zap.String("responseSetId", set.ID),
		zap.String("subjectId", subjectID),
		zap.String("sourceKind", string(kind)),
		zap.String("sourceId", sourceID),
		zap.Int("answers", len(answers)))

	return set, nil
}

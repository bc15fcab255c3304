package model

import "time"

// SourceKind identifies where a response set came from
type SourceKind string

const (
	SourceSurvey  SourceKind = "survey"
	SourceMeeting SourceKind = "meeting"
)

// AnswerType declares the expected shape of an answer's value
type AnswerType string

const (
	AnswerTypeText    AnswerType = "text"
	AnswerTypeRating  AnswerType = "rating"
	AnswerTypeChoice  AnswerType = "choice"
	AnswerTypeBoolean AnswerType = "boolean"
)

// AnswerValue holds the answer payload; which field is set depends on the
// declared answer type. Unexpected combinations are tolerated and classified
// as neutral by the analyzer rather than rejected.
type AnswerValue struct {
	Text   string `json:"text,omitempty" bson:"text,omitempty"`     // For text answers
	Rating int    `json:"rating,omitempty" bson:"rating,omitempty"` // For rating answers (1-10)
	Choice string `json:"choice,omitempty" bson:"choice,omitempty"` // For single-choice answers
	YesNo  string `json:"yesNo,omitempty" bson:"yesNo,omitempty"`   // "Yes" or "No"
}

// RawAnswer is one respondent's answer to one question
type RawAnswer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Type       AnswerType  `json:"type" bson:"type"`
	Value      AnswerValue `json:"value" bson:"value"`
}

// ResponseSet is the immutable bundle of answers submitted together for one
// survey or meeting instance. Created once, never updated; a resubmission
// produces a new ResponseSet that supersedes the old one.
type ResponseSet struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	SubjectID   string      `json:"subjectId" bson:"subjectId"` // Member being assessed
	SourceKind  SourceKind  `json:"sourceKind" bson:"sourceKind"`
	SourceID    string      `json:"sourceId" bson:"sourceId"`
	Answers     []RawAnswer `json:"answers" bson:"answers"`
	SubmittedAt time.Time   `json:"submittedAt" bson:"submittedAt"`
}

package model

import "time"

// Insight is a persisted narrative record derived from an analysis pass.
// Append-only; the pipeline never mutates or deletes insights.
type Insight struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	MemberID    string     `json:"memberId" bson:"memberId"`
	Source      SourceKind `json:"source" bson:"source"`
	SourceID    string     `json:"sourceId" bson:"sourceId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Severity    Severity   `json:"severity" bson:"severity"`
	ActionItems []string   `json:"actionItems" bson:"actionItems"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}

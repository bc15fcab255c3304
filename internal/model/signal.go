package model

import "time"

// SignalType categorizes the time series a signal point belongs to
type SignalType string

const (
	SignalSurveySatisfaction SignalType = "survey_satisfaction"
	SignalMeeting            SignalType = "meeting"
)

// Signal is one persisted point of a member's performance time series.
// Append-only; the "current" signal is simply the most recent point.
type Signal struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	MemberID         string           `json:"memberId" bson:"memberId"`
	SignalType       SignalType       `json:"signalType" bson:"signalType"`
	Value            int              `json:"value" bson:"value"` // 1-10
	SourceID         string           `json:"sourceId" bson:"sourceId"`
	PerformanceColor PerformanceColor `json:"performanceColor" bson:"performanceColor"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`
}

package model

import "time"

// TeamHealth is a point-in-time aggregate over a team's latest signals
type TeamHealth struct {
	TeamID        string                   `json:"teamId" bson:"teamId"`
	AverageSignal float64                  `json:"averageSignal" bson:"averageSignal"`
	MemberCount   int                      `json:"memberCount" bson:"memberCount"`   // Members with at least one signal
	ColorCounts   map[PerformanceColor]int `json:"colorCounts" bson:"colorCounts"`
	GeneratedAt   time.Time                `json:"generatedAt" bson:"generatedAt"`
}

// Alert flags a member whose latest signal fell below the alert thresholds
type Alert struct {
	MemberID    string    `json:"memberId"`
	MemberName  string    `json:"memberName,omitempty"`
	SignalValue int       `json:"signalValue"`
	Level       Severity  `json:"level"` // high or critical
	FlaggedAt   time.Time `json:"flaggedAt"`
}

package model

import "time"

// Question is a question template in a survey; its type declares the
// expected answer shape
type Question struct {
	ID     string     `json:"id" bson:"id"` // e.g., "Q1"
	Type   AnswerType `json:"type" bson:"type"`
	Prompt string     `json:"prompt" bson:"prompt"`
}

// Survey is a survey template, optionally dispatched on a recurring interval
type Survey struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	TeamID       string     `json:"teamId" bson:"teamId"`
	Title        string     `json:"title" bson:"title"`
	Questions    []Question `json:"questions" bson:"questions"`
	Recurring    bool       `json:"recurring" bson:"recurring"`
	IntervalDays int        `json:"intervalDays,omitempty" bson:"intervalDays,omitempty"`
	LastSentAt   time.Time  `json:"lastSentAt,omitempty" bson:"lastSentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
}

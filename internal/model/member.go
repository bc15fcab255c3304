package model

import "time"

// Member is a team member whose performance signals are tracked
type Member struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TeamID    string    `json:"teamId" bson:"teamId"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role,omitempty" bson:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// models/activity.go
package models

import "time"

// Solve başarılı bir flag gönderiminin kaydı.
type Solve struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	ChallengeID    string    `json:"challengeId"`
	ChallengeTitle string    `json:"challengeTitle"`
	Points         int       `json:"points"`
	FirstBlood     bool      `json:"firstBlood"`
	Timestamp      time.Time `json:"timestamp"`
	IP             string    `json:"ip"`
}

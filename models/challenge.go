// models/challenge.go
package models

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
	Insane Difficulty = "Insane"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard, Insane:
		return true
	}
	return false
}

type ChallengeType string

const (
	TypeVM   ChallengeType = "VM"
	TypeFile ChallengeType = "File"
)

func (t ChallengeType) Valid() bool {
	return t == TypeVM || t == TypeFile
}

type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Difficulty  Difficulty    `json:"difficulty"`
	Category    string        `json:"category"`
	Type        ChallengeType `json:"type"`
	Points      int           `json:"points"`
	SolveCount  int           `json:"solveCount"`
}

// ChallengeView listeleme yanıtında çözülme durumuyla birlikte döner.
type ChallengeView struct {
	Challenge
	IsSolved bool `json:"isSolved"`
}

type ChallengeFilter struct {
	Search     string
	Difficulty Difficulty
	Category   string
	Type       ChallengeType
}

type Progress struct {
	Solved     int `json:"solved"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

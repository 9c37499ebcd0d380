// models/leaderboard.go

package models

import "time"

type LeaderboardEntry struct {
	ID              string    `json:"id"`
	Rank            int       `json:"rank"`
	Username        string    `json:"username"`
	Points          int       `json:"points"`
	SolveCount      int       `json:"solveCount"`
	FirstSolveCount int       `json:"firstSolveCount"`
	LastActive      time.Time `json:"lastActive"`
	IsCurrentUser   bool      `json:"isCurrentUser"`
}

// PlayerHistory sıralamadaki bir oyuncunun platform dışı geçmişi.
type PlayerHistory struct {
	SolveCount      int            `json:"solveCount"`
	FirstSolveCount int            `json:"firstSolveCount"`
	LastActive      time.Time      `json:"lastActive"`
	ByDifficulty    map[string]int `json:"byDifficulty,omitempty"`
	ByCategory      map[string]int `json:"byCategory,omitempty"`
}

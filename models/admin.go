package models

type PlatformStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalChallenges  int `json:"totalChallenges"`
	TotalSolves      int `json:"totalSolves"`
	ActiveUsersToday int `json:"activeUsersToday"`
	NewUsersToday    int `json:"newUsersToday"`
}

type ProfileStats struct {
	SolvedCount    int            `json:"solvedCount"`
	TotalCount     int            `json:"totalCount"`
	CompletionRate int            `json:"completionRate"`
	ByDifficulty   map[string]int `json:"byDifficulty"`
	ByCategory     map[string]int `json:"byCategory"`
}

// handlers/leaderboard.go
package handlers

import (
	"net/http"

	"vulnops/leaderboard"
	"vulnops/models"
)

type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
	Total   int                       `json:"total"`
}

func GetLeaderboard(board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID string
		if user := currentUser(r); user != nil {
			userID = user.ID
		}

		entries := board.Entries(r.URL.Query().Get("search"), userID)
		writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries, Total: len(entries)})
	}
}

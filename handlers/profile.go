// handlers/profile.go
package handlers

import (
	"net/http"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/leaderboard"
	"vulnops/models"

	"github.com/gorilla/mux"
)

type ProfileResponse struct {
	User          models.User         `json:"user"`
	Stats         models.ProfileStats `json:"stats"`
	Solved        []models.Challenge  `json:"solved"`
	IsCurrentUser bool                `json:"isCurrentUser"`

	// yalnızca sıralamadan gelen oyuncular için
	History *models.PlayerHistory `json:"history,omitempty"`
}

// profileFor kendi profilinde oturumdaki kaydı, diğerlerinde önce dizindeki
// kaydı, sonra sıralamadaki oyuncuyu kullanır; kayıt olan kullanıcılar
// ikisinde de yer almaz.
func profileFor(r *http.Request, reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board, id string) (ProfileResponse, error) {
	current := currentUser(r)

	var (
		user    models.User
		history *models.PlayerHistory
	)
	switch {
	case current != nil && (id == "" || id == current.ID):
		user = *current
	case id == "":
		return ProfileResponse{}, auth.ErrNotAuthenticated
	default:
		if found, ok := dir.Find(id); ok {
			user = found
			break
		}
		found, h, ok := board.Player(id)
		if !ok {
			return ProfileResponse{}, errUserNotFound
		}
		user, history = found, &h
	}

	return ProfileResponse{
		User:          user,
		Stats:         reg.ProfileStats(user.ID),
		Solved:        reg.Solved(user.ID),
		IsCurrentUser: current != nil && current.ID == user.ID,
		History:       history,
	}, nil
}

func GetMyProfile(reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileFor(r, reg, dir, board, "")
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func GetProfile(reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileFor(r, reg, dir, board, mux.Vars(r)["id"])
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// handlers/challenges.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/database"
	"vulnops/feed"
	"vulnops/models"

	"github.com/gorilla/mux"
)

var (
	errAlreadySolved = errors.New("you have already solved this challenge")
	errEmptyFlag     = errors.New("please enter a flag")
)

type FlagSubmitRequest struct {
	Flag string `json:"flag"`
}

type FlagSubmitResponse struct {
	Success    bool         `json:"success"`
	Correct    bool         `json:"correct"`
	Message    string       `json:"message"`
	Points     int          `json:"points,omitempty"`
	FirstBlood bool         `json:"firstBlood,omitempty"`
	User       *models.User `json:"user,omitempty"`
}

// filterFrom liste sayfası ve API için ortak query parametreleri.
func filterFrom(r *http.Request) (models.ChallengeFilter, error) {
	q := r.URL.Query()
	f := models.ChallengeFilter{
		Search:     q.Get("search"),
		Difficulty: models.Difficulty(q.Get("difficulty")),
		Category:   q.Get("category"),
		Type:       models.ChallengeType(q.Get("type")),
	}
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return f, errBadRequest
	}
	if f.Type != "" && !f.Type.Valid() {
		return f, errBadRequest
	}
	return f, nil
}

func GetChallenges(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := filterFrom(r)
		if err != nil {
			fail(w, err)
			return
		}

		var userID string
		if user := currentUser(r); user != nil {
			userID = user.ID
		}
		views := reg.Filter(userID, f)

		resp := map[string]interface{}{
			"challenges": views,
			"categories": reg.Categories(),
			"total":      len(views),
		}
		if userID != "" {
			resp["progress"] = reg.Progress(userID)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func GetChallenge(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := reg.GetChallengeByID(mux.Vars(r)["id"])
		if !ok {
			fail(w, challenges.ErrChallengeNotFound)
			return
		}

		view := models.ChallengeView{Challenge: c}
		if user := currentUser(r); user != nil {
			view.IsSolved = reg.IsSolved(user.ID, c.ID)
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func SubmitFlag(reg *challenges.Registry, solves database.SolveRepository, hub *feed.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FlagSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, errBadRequest)
			return
		}

		res, solve, err := submit(r, reg, solves, hub, mux.Vars(r)["id"], req.Flag)
		if err != nil {
			fail(w, err)
			return
		}

		if !res.Correct {
			writeJSON(w, http.StatusOK, FlagSubmitResponse{
				Success: true,
				Message: "The submitted flag is not correct. Try again!",
			})
			return
		}

		writeJSON(w, http.StatusOK, FlagSubmitResponse{
			Success:    true,
			Correct:    true,
			Message:    "Correct flag! Challenge solved.",
			Points:     res.Points,
			FirstBlood: solve.FirstBlood,
			User:       res.User,
		})
	}
}

// submit API ve sayfa formu için ortak gönderim akışı. Aynı challenge'ın
// tekrar gönderimi registry kilidi altında reddedilir.
func submit(r *http.Request, reg *challenges.Registry, solves database.SolveRepository, hub *feed.Hub, id, flag string) (challenges.Submission, models.Solve, error) {
	s := currentSession(r)
	user := s.CheckAuth()
	if user == nil {
		return challenges.Submission{}, models.Solve{}, auth.ErrNotAuthenticated
	}
	if _, ok := reg.GetChallengeByID(id); !ok {
		return challenges.Submission{}, models.Solve{}, challenges.ErrChallengeNotFound
	}
	if strings.TrimSpace(flag) == "" {
		return challenges.Submission{}, models.Solve{}, errEmptyFlag
	}

	res, err := reg.SubmitOnce(s, id, flag)
	if err != nil {
		return res, models.Solve{}, err
	}
	if res.AlreadySolved {
		return res, models.Solve{}, errAlreadySolved
	}
	if !res.Correct {
		return res, models.Solve{}, nil
	}

	solve, err := solves.Record(r.Context(), models.Solve{
		UserID:         user.ID,
		Username:       user.Username,
		ChallengeID:    res.Challenge.ID,
		ChallengeTitle: res.Challenge.Title,
		Points:         res.Points,
		IP:             clientIP(r),
	})
	if err != nil {
		// Çözüm sayıldı, yalnızca geçmiş kaydı eksik kalır
		log.Printf("çözüm geçmişe yazılamadı: %v", err)
		return res, models.Solve{}, nil
	}
	if solve.FirstBlood {
		log.Printf("first blood: %s -> %s", solve.Username, solve.ChallengeTitle)
	}
	hub.Publish(feed.EventFor(solve))
	return res, solve, nil
}

func GetUserSolves(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"userId": userID,
			"solved": reg.GetUserSolvedChallenges(userID),
		})
	}
}

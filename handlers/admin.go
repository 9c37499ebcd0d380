// handlers/admin.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/database"
	"vulnops/models"
)

const defaultSolveLimit = 50

// ============ KULLANICILAR ============

func AdminUsers(dir *auth.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := dir.Users(r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"users": users,
			"total": len(users),
		})
	}
}

// ============ CHALLENGE'LAR ============

func AdminChallenges(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := reg.All()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"challenges": all,
			"total":      len(all),
		})
	}
}

// AdminCreateChallenge formu doğrular ve kabul eder; liste sabittir,
// challenge eklenmez.
func AdminCreateChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Challenge
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			fail(w, errBadRequest)
			return
		}
		if err := validateChallenge(c); err != nil {
			fail(w, err)
			return
		}

		if user := currentUser(r); user != nil {
			log.Printf("yeni challenge önerisi: %q (%s)", c.Title, user.Username)
		}
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"success":   true,
			"message":   "Challenge received. The challenge list is read-only on this platform.",
			"challenge": c,
		})
	}
}

func validateChallenge(c models.Challenge) error {
	switch {
	case strings.TrimSpace(c.Title) == "":
		return fmt.Errorf("%w: title is required", errBadRequest)
	case strings.TrimSpace(c.Description) == "":
		return fmt.Errorf("%w: description is required", errBadRequest)
	case strings.TrimSpace(c.Category) == "":
		return fmt.Errorf("%w: category is required", errBadRequest)
	case !c.Difficulty.Valid():
		return fmt.Errorf("%w: unknown difficulty %q", errBadRequest, c.Difficulty)
	case !c.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", errBadRequest, c.Type)
	case c.Points <= 0:
		return fmt.Errorf("%w: points must be positive", errBadRequest)
	}
	return nil
}

// ============ ÇÖZÜMLER ============

func AdminSolves(solves database.SolveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit < 1 {
			limit = defaultSolveLimit
		}

		recent, err := solves.Recent(r.Context(), limit)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"solves": recent,
			"total":  len(recent),
		})
	}
}

// ============ İSTATİSTİKLER ============

func AdminStats(reg *challenges.Registry, dir *auth.Directory, solves database.SolveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := platformStats(r.Context(), reg, dir, solves, time.Now())
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func platformStats(ctx context.Context, reg *challenges.Registry, dir *auth.Directory, solves database.SolveRepository, now time.Time) (models.PlatformStats, error) {
	total, err := solves.Count(ctx)
	if err != nil {
		return models.PlatformStats{}, err
	}

	users := dir.Users("")
	stats := models.PlatformStats{
		TotalUsers:      len(users),
		TotalChallenges: reg.Count(),
		TotalSolves:     total,
	}
	since := now.Add(-24 * time.Hour)
	for _, u := range users {
		if u.LastActive.After(since) {
			stats.ActiveUsersToday++
		}
		if u.CreatedAt.After(since) {
			stats.NewUsersToday++
		}
	}
	return stats, nil
}

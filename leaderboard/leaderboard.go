// leaderboard/leaderboard.go
package leaderboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"vulnops/models"
)

type Board struct {
	entries []models.LeaderboardEntry
}

// New girişleri puana göre sıralar ve sıra numaralarını yeniden verir.
func New(entries []models.LeaderboardEntry) *Board {
	sorted := append([]models.LeaderboardEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	return &Board{entries: sorted}
}

func NewBoard() *Board {
	return New(seedEntries)
}

// Entries kullanıcı adında arama yapar; currentUserID eşleşen satır işaretlenir.
func (b *Board) Entries(query, currentUserID string) []models.LeaderboardEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.LeaderboardEntry{}
	for _, e := range b.entries {
		if q != "" && !strings.Contains(strings.ToLower(e.Username), q) {
			continue
		}
		e.IsCurrentUser = currentUserID != "" && e.ID == currentUserID
		out = append(out, e)
	}
	return out
}

func (b *Board) Top(n int) []models.LeaderboardEntry {
	if n > len(b.entries) {
		n = len(b.entries)
	}
	if n < 0 {
		n = 0
	}
	return append([]models.LeaderboardEntry(nil), b.entries[:n]...)
}

// Player sıralamadaki bir satırı profil sayfası için kullanıcıya çevirir.
// Ayrıntılı kaydı olan oyuncuların e-posta, katılım tarihi ve dağılımları
// da doldurulur.
func (b *Board) Player(id string) (models.User, models.PlayerHistory, bool) {
	for _, e := range b.entries {
		if e.ID != id {
			continue
		}
		user := models.User{ID: e.ID, Username: e.Username, Points: e.Points, Rank: e.Rank}
		history := models.PlayerHistory{
			SolveCount:      e.SolveCount,
			FirstSolveCount: e.FirstSolveCount,
			LastActive:      e.LastActive,
		}
		if d, ok := seedProfiles[id]; ok {
			user.Email = d.email
			user.CreatedAt = d.createdAt
			history.ByDifficulty = d.byDifficulty
			history.ByCategory = d.byCategory
		}
		return user, history, true
	}
	return models.User{}, models.PlayerHistory{}, false
}

func LastActiveLabel(t, now time.Time) string {
	hours := int(now.Sub(t).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case hours < 48:
		return "Yesterday"
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

// Initials "binary_ninja" -> "BN".
func Initials(username string) string {
	var b strings.Builder
	for _, part := range strings.Split(username, "_") {
		if part != "" {
			b.WriteString(strings.ToUpper(part[:1]))
		}
	}
	return b.String()
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var seedEntries = []models.LeaderboardEntry{
	{ID: "1", Username: "h4x0r_supreme", Points: 15750, SolveCount: 42, FirstSolveCount: 8, LastActive: at("2025-04-05T18:30:00Z")},
	{ID: "2", Username: "0xdeadbeef", Points: 14200, SolveCount: 39, FirstSolveCount: 5, LastActive: at("2025-04-05T14:15:00Z")},
	{ID: "3", Username: "binary_ninja", Points: 13800, SolveCount: 36, FirstSolveCount: 7, LastActive: at("2025-04-04T22:45:00Z")},
	{ID: "4", Username: "shell_shock", Points: 12500, SolveCount: 33, FirstSolveCount: 3, LastActive: at("2025-04-05T10:10:00Z")},
	{ID: "5", Username: "exploit_master", Points: 11900, SolveCount: 31, FirstSolveCount: 4, LastActive: at("2025-04-05T08:20:00Z")},
	{ID: "6", Username: "cyber_ghost", Points: 10800, SolveCount: 28, FirstSolveCount: 2, LastActive: at("2025-04-04T16:30:00Z")},
	{ID: "7", Username: "packet_storm", Points: 9500, SolveCount: 25, FirstSolveCount: 1, LastActive: at("2025-04-03T20:45:00Z")},
	{ID: "8", Username: "buffer_overflow", Points: 8200, SolveCount: 22, FirstSolveCount: 0, LastActive: at("2025-04-05T12:15:00Z")},
	{ID: "9", Username: "root_access", Points: 7400, SolveCount: 19, FirstSolveCount: 2, LastActive: at("2025-04-04T09:30:00Z")},
	{ID: "10", Username: "hacker", Points: 6800, SolveCount: 17, FirstSolveCount: 1, LastActive: at("2025-04-05T07:50:00Z")},
}

type profileDetail struct {
	email        string
	createdAt    time.Time
	byDifficulty map[string]int
	byCategory   map[string]int
}

var seedProfiles = map[string]profileDetail{
	"1": {
		email:        "supreme@example.com",
		createdAt:    at("2024-12-01T00:00:00Z"),
		byDifficulty: map[string]int{"Easy": 15, "Medium": 18, "Hard": 8, "Insane": 1},
		byCategory: map[string]int{
			"Web": 10, "Crypto": 7, "Reversing": 8,
			"Forensics": 7, "Pwning": 5, "Misc": 5,
		},
	},
}

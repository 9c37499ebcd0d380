// challenges/registry.go
package challenges

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"vulnops/auth"
	"vulnops/models"
)

var ErrChallengeNotFound = errors.New("challenge not found")

// Submission bir flag gönderiminin sonucu.
type Submission struct {
	Correct       bool
	AlreadySolved bool
	Points        int // bu gönderimle kazanılan puan
	Challenge     models.Challenge
	User          *models.User
}

// Registry sabit challenge listesi ve kullanıcı başına çözülenler.
// Çözümler yalnızca bellekte tutulur.
type Registry struct {
	mu         sync.RWMutex
	challenges []models.Challenge
	solves     map[string][]string
}

func New(challenges []models.Challenge, solves map[string][]string) *Registry {
	r := &Registry{
		challenges: append([]models.Challenge(nil), challenges...),
		solves:     make(map[string][]string, len(solves)),
	}
	for userID, ids := range solves {
		r.solves[userID] = append([]string(nil), ids...)
	}
	return r
}

// NewRegistry sabit challenge listesiyle, çözümsüz başlar.
func NewRegistry() *Registry {
	return New(seedChallenges, nil)
}

// NewDemoRegistry örnek kullanıcıların çözümleriyle başlar.
func NewDemoRegistry() *Registry {
	return New(seedChallenges, seedSolves)
}

// FlagFor bir challenge için kabul edilen flag. Gerçek bir sır değildir.
func FlagFor(challengeID string) string {
	return fmt.Sprintf("flag{challenge_%s_solved}", challengeID)
}

func (r *Registry) All() []models.Challenge {
	return append([]models.Challenge(nil), r.challenges...)
}

func (r *Registry) Count() int {
	return len(r.challenges)
}

func (r *Registry) GetChallengeByID(id string) (models.Challenge, bool) {
	for _, c := range r.challenges {
		if c.ID == id {
			return c, true
		}
	}
	return models.Challenge{}, false
}

func (r *Registry) GetUserSolvedChallenges(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.solves[userID]...)
}

func (r *Registry) IsSolved(userID, challengeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return contains(r.solves[userID], challengeID)
}

func (r *Registry) SubmitFlag(s *auth.Session, challengeID, flag string) (bool, error) {
	res, err := r.Submit(s, challengeID, flag)
	if err != nil {
		return false, err
	}
	return res.Correct, nil
}

// Submit flag'i büyük/küçük harf duyarsız karşılaştırır. Doğruysa challenge
// kullanıcının çözülenlerine eklenir ve puanı oturumdaki kayda yazılır.
// Liste tekrarsız kalır ama puan her doğru gönderimde eklenir.
func (r *Registry) Submit(s *auth.Session, challengeID, flag string) (Submission, error) {
	return r.submit(s, challengeID, flag, false)
}

// SubmitOnce Submit gibidir, ancak challenge zaten çözülmüşse flag'e
// bakmadan AlreadySolved döner ve puan eklemez. Kontrol ve ekleme aynı
// kilit altında yapılır.
func (r *Registry) SubmitOnce(s *auth.Session, challengeID, flag string) (Submission, error) {
	return r.submit(s, challengeID, flag, true)
}

func (r *Registry) submit(s *auth.Session, challengeID, flag string, once bool) (Submission, error) {
	user := s.CheckAuth()
	if user == nil {
		return Submission{}, auth.ErrNotAuthenticated
	}

	challenge, ok := r.GetChallengeByID(challengeID)
	if !ok {
		return Submission{}, ErrChallengeNotFound
	}
	res := Submission{Challenge: challenge, User: user}

	r.mu.Lock()
	defer r.mu.Unlock()

	solved := contains(r.solves[user.ID], challengeID)
	if once && solved {
		res.AlreadySolved = true
		return res, nil
	}
	if strings.ToLower(flag) != FlagFor(challengeID) {
		return res, nil
	}
	res.Correct = true

	updated, err := s.AddPoints(challenge.Points)
	if err != nil {
		return Submission{}, fmt.Errorf("puan güncellenemedi: %w", err)
	}
	if solved {
		res.AlreadySolved = true
	} else {
		r.solves[user.ID] = append(r.solves[user.ID], challengeID)
	}

	res.Points = challenge.Points
	res.User = updated
	log.Printf("%s çözdü: %s (+%d)", user.Username, challenge.Title, challenge.Points)
	return res, nil
}

// Filter listeleme sayfasındaki arama ve filtreleri uygular.
func (r *Registry) Filter(userID string, f models.ChallengeFilter) []models.ChallengeView {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	solved := r.GetUserSolvedChallenges(userID)

	views := []models.ChallengeView{}
	for _, c := range r.challenges {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) &&
			!strings.Contains(strings.ToLower(c.Category), search) {
			continue
		}
		if f.Difficulty != "" && c.Difficulty != f.Difficulty {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		views = append(views, models.ChallengeView{Challenge: c, IsSolved: contains(solved, c.ID)})
	}
	return views
}

// Categories ilk görülme sırasıyla benzersiz kategoriler.
func (r *Registry) Categories() []string {
	var out []string
	for _, c := range r.challenges {
		if !contains(out, c.Category) {
			out = append(out, c.Category)
		}
	}
	return out
}

func (r *Registry) Progress(userID string) models.Progress {
	p := models.Progress{
		Solved: len(r.Solved(userID)),
		Total:  len(r.challenges),
	}
	p.Percentage = percentage(p.Solved, p.Total)
	return p
}

// Solved kullanıcının çözdüğü challenge'lar, liste sırasıyla.
func (r *Registry) Solved(userID string) []models.Challenge {
	ids := r.GetUserSolvedChallenges(userID)
	out := []models.Challenge{}
	for _, c := range r.challenges {
		if contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) ProfileStats(userID string) models.ProfileStats {
	solved := r.Solved(userID)
	stats := models.ProfileStats{
		SolvedCount:    len(solved),
		TotalCount:     len(r.challenges),
		CompletionRate: percentage(len(solved), len(r.challenges)),
		ByDifficulty:   map[string]int{},
		ByCategory:     map[string]int{},
	}
	for _, c := range solved {
		stats.ByDifficulty[string(c.Difficulty)]++
		stats.ByCategory[c.Category]++
	}
	return stats
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

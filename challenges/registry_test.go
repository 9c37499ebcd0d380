package challenges

import (
	"strconv"
	"strings"
	"sync"
	"testing"

	"vulnops/auth"
	"vulnops/models"
	"vulnops/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDir = auth.NewDirectory()

func loggedIn(t *testing.T, email, password string) *auth.Session {
	t.Helper()
	s := auth.NewSession(store.NewMemoryKV(), testDir)
	_, err := s.Login(email, password)
	require.NoError(t, err)
	return s
}

func TestGetChallengeByID(t *testing.T) {
	r := NewRegistry()
	for i := 1; i <= 8; i++ {
		c, ok := r.GetChallengeByID(strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), c.ID)
		assert.True(t, c.Difficulty.Valid())
		assert.True(t, c.Type.Valid())
	}
	for _, id := range []string{"0", "9", "100", "", "-1", "01", "one"} {
		_, ok := r.GetChallengeByID(id)
		assert.False(t, ok, id)
	}
}

func TestGetUserSolvedChallenges(t *testing.T) {
	assert.Empty(t, NewRegistry().GetUserSolvedChallenges("user123"))

	demo := NewDemoRegistry()
	assert.Equal(t, []string{"1", "3", "7"}, demo.GetUserSolvedChallenges("user123"))
	assert.Equal(t, []string{}, demo.GetUserSolvedChallenges("nobody"))

	// dönen dilim kopya olmalı
	got := demo.GetUserSolvedChallenges("user123")
	got[0] = "8"
	assert.Equal(t, "1", demo.GetUserSolvedChallenges("user123")[0])
}

func TestAdminScenario(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "admin@vulnops.com", "admin")

	user := s.CheckAuth()
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, 5000, user.Points)

	ok, err := r.SubmitFlag(s, "1", "FLAG{CHALLENGE_1_SOLVED}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, r.GetUserSolvedChallenges("admin123"))
	assert.Equal(t, 5100, s.CheckAuth().Points)
}

func TestSubmitFlagAnyCase(t *testing.T) {
	for _, c := range NewRegistry().All() {
		r := NewRegistry()
		s := loggedIn(t, "user@vulnops.com", "user")
		before := s.CheckAuth().Points

		flag := FlagFor(c.ID)
		ok, err := r.SubmitFlag(s, c.ID, strings.ToUpper(flag[:5])+flag[5:])
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, r.GetUserSolvedChallenges("user123"), c.ID)
		assert.Equal(t, before+c.Points, s.CheckAuth().Points)
	}
}

func TestSubmitFlagWrong(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "user@vulnops.com", "user")

	for _, flag := range []string{
		"",
		"flag{challenge_2_solved}",
		"flag{challenge_1_solved} ",
		"flag{challenge_1}",
		"FLAG[CHALLENGE_1_SOLVED]",
	} {
		ok, err := r.SubmitFlag(s, "1", flag)
		require.NoError(t, err)
		assert.False(t, ok, flag)
	}
	assert.Empty(t, r.GetUserSolvedChallenges("user123"))
	assert.Equal(t, 1500, s.CheckAuth().Points)
}

func TestSubmitFlagRequiresSession(t *testing.T) {
	r := NewRegistry()
	s := auth.NewSession(store.NewMemoryKV(), testDir)

	ok, err := r.SubmitFlag(s, "1", FlagFor("1"))
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.False(t, ok)
}

func TestSubmitFlagUnknownChallenge(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "user@vulnops.com", "user")

	_, err := r.SubmitFlag(s, "99", FlagFor("99"))
	assert.ErrorIs(t, err, ErrChallengeNotFound)
	assert.Empty(t, r.GetUserSolvedChallenges("user123"))
}

func TestSubmitTwiceKeepsListUnique(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "user@vulnops.com", "user")

	first, err := r.Submit(s, "2", FlagFor("2"))
	require.NoError(t, err)
	assert.False(t, first.AlreadySolved)
	assert.Equal(t, 250, first.Points)

	second, err := r.Submit(s, "2", FlagFor("2"))
	require.NoError(t, err)
	assert.True(t, second.Correct)
	assert.True(t, second.AlreadySolved)
	assert.Equal(t, []string{"2"}, r.GetUserSolvedChallenges("user123"))
	assert.True(t, r.IsSolved("user123", "2"))
}

func TestSubmitOnceRejectsRepeat(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "user@vulnops.com", "user")

	first, err := r.SubmitOnce(s, "3", FlagFor("3"))
	require.NoError(t, err)
	assert.True(t, first.Correct)
	assert.False(t, first.AlreadySolved)

	// çözülmüş challenge'da flag'e bakılmaz
	for _, flag := range []string{FlagFor("3"), "yanlis"} {
		again, err := r.SubmitOnce(s, "3", flag)
		require.NoError(t, err)
		assert.True(t, again.AlreadySolved, flag)
		assert.False(t, again.Correct, flag)
		assert.Zero(t, again.Points, flag)
	}
	assert.Equal(t, 1500+first.Points, s.CheckAuth().Points)
}

func TestSubmitOnceConcurrentSameSession(t *testing.T) {
	r := NewRegistry()
	s := loggedIn(t, "user@vulnops.com", "user")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.SubmitOnce(s, "8", FlagFor("8"))
			if err == nil && res.Correct && !res.AlreadySolved {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, []string{"8"}, r.GetUserSolvedChallenges("user123"))
	assert.Equal(t, 2000, s.CheckAuth().Points)
}

func TestSubmitConcurrentUsers(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		s, err := auth.SessionFor(models.User{ID: "u" + strconv.Itoa(i)}, testDir)
		require.NoError(t, err)
		wg.Add(1)
		go func(s *auth.Session) {
			defer wg.Done()
			for _, c := range r.All() {
				r.SubmitFlag(s, c.ID, FlagFor(c.ID))
			}
		}(s)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Len(t, r.GetUserSolvedChallenges("u"+strconv.Itoa(i)), 8)
	}
}

func TestFilter(t *testing.T) {
	r := NewDemoRegistry()

	all := r.Filter("user123", models.ChallengeFilter{})
	require.Len(t, all, 8)
	assert.True(t, all[0].IsSolved)
	assert.False(t, all[1].IsSolved)

	easy := r.Filter("", models.ChallengeFilter{Difficulty: models.Easy})
	assert.Len(t, easy, 3)

	vm := r.Filter("", models.ChallengeFilter{Type: models.TypeVM})
	require.Len(t, vm, 1)
	assert.Equal(t, "4", vm[0].ID)

	crypto := r.Filter("", models.ChallengeFilter{Search: "CRYPTO"})
	require.Len(t, crypto, 1)
	assert.Equal(t, "Cryptic Message", crypto[0].Title)

	none := r.Filter("", models.ChallengeFilter{Category: "Forensics", Difficulty: models.Easy})
	assert.Empty(t, none)
}

func TestCategoriesAndProgress(t *testing.T) {
	r := NewDemoRegistry()
	assert.Len(t, r.Categories(), 8)
	assert.Equal(t, "Web Exploitation", r.Categories()[0])

	assert.Equal(t, models.Progress{Solved: 3, Total: 8, Percentage: 38}, r.Progress("user123"))
	assert.Equal(t, models.Progress{Solved: 0, Total: 8, Percentage: 0}, r.Progress("nobody"))
}

func TestProfileStats(t *testing.T) {
	stats := NewDemoRegistry().ProfileStats("admin123")
	assert.Equal(t, 5, stats.SolvedCount)
	assert.Equal(t, 63, stats.CompletionRate)
	assert.Equal(t, 2, stats.ByDifficulty["Easy"])
	assert.Equal(t, 2, stats.ByDifficulty["Medium"])
	assert.Equal(t, 1, stats.ByDifficulty["Hard"])
	assert.Equal(t, 1, stats.ByCategory["Cryptography"])
}

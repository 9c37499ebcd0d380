package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"vulnops/models"
	"vulnops/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bcrypt maliyeti yüzünden dizin bir kez kuruluyor.
var testDir = NewDirectory()

func newTestSession() (*Session, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	s := NewSession(kv, testDir)
	s.now = func() time.Time { return time.Date(2025, 4, 6, 10, 0, 0, 0, time.UTC) }
	return s, kv
}

func TestLoginAdmin(t *testing.T) {
	s, kv := newTestSession()

	u, err := s.Login("admin@vulnops.com", "admin")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, "admin123", u.ID)
	assert.Equal(t, 5000, u.Points)
	assert.Equal(t, 1, u.Rank)
	assert.Equal(t, time.Date(2025, 4, 6, 10, 0, 0, 0, time.UTC), u.CreatedAt)

	raw, ok := kv.Get(store.UserKey)
	require.True(t, ok)
	assert.Contains(t, raw, `"isAdmin":true`)
}

func TestLoginUser(t *testing.T) {
	s, _ := newTestSession()

	u, err := s.Login("user@vulnops.com", "user")
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "hacker", u.Username)
	assert.Equal(t, 1500, u.Points)
}

func TestLoginRejectsOtherPairs(t *testing.T) {
	cases := []struct{ email, password string }{
		{"admin@vulnops.com", "user"},
		{"user@vulnops.com", "admin"},
		{"ADMIN@vulnops.com", "admin"},
		{"ninja@vulnops.com", ""},
		{"", ""},
		{"someone@example.com", "password"},
	}
	for _, tc := range cases {
		s, kv := newTestSession()
		_, err := s.Login(tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, tc.email)
		_, ok := kv.Get(store.UserKey)
		assert.False(t, ok)
	}
}

func TestRegister(t *testing.T) {
	s, _ := newTestSession()

	u, err := s.Register("new@vulnops.com", "newbie", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "user_"))
	assert.Equal(t, 0, u.Points)
	assert.Equal(t, 999, u.Rank)
	assert.False(t, u.IsAdmin)

	got := s.CheckAuth()
	require.NotNil(t, got)
	assert.Equal(t, *u, *got)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		email, username, password string
		want                      error
	}{
		{"", "name", "secret", ErrFieldsRequired},
		{"a@b.c", "", "secret", ErrFieldsRequired},
		{"a@b.c", "name", "", ErrFieldsRequired},
		{"a@b.c", "name", "12345", ErrPasswordTooShort},
		{"a@b.c", "name", "şifre", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		s, kv := newTestSession()
		_, err := s.Register(tc.email, tc.username, tc.password)
		assert.ErrorIs(t, err, tc.want)
		_, ok := kv.Get(store.UserKey)
		assert.False(t, ok, "register must not create a session on failure")
	}
}

func TestRegisterPasswordLengthInUTF16(t *testing.T) {
	// BMP dışındaki karakterler iki birim sayılır
	for _, password := range []string{"🔥🔥🔥", "ab🔥🔥", "şifre1"} {
		s, _ := newTestSession()
		_, err := s.Register("a@b.c", "name", password)
		assert.NoError(t, err, password)
	}

	s, _ := newTestSession()
	_, err := s.Register("a@b.c", "name", "ab🔥")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisteredAccountCannotLogin(t *testing.T) {
	s, _ := newTestSession()
	_, err := s.Register("new@vulnops.com", "newbie", "secret")
	require.NoError(t, err)

	_, err = s.Login("new@vulnops.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutAndCheckAuth(t *testing.T) {
	s, _ := newTestSession()
	assert.Nil(t, s.CheckAuth())

	_, err := s.Login("user@vulnops.com", "user")
	require.NoError(t, err)
	assert.NotNil(t, s.CheckAuth())

	require.NoError(t, s.Logout())
	assert.Nil(t, s.CheckAuth())
}

func TestCheckAuthDropsCorruptRecord(t *testing.T) {
	s, kv := newTestSession()
	require.NoError(t, kv.Set(store.UserKey, "{not json"))

	assert.Nil(t, s.CheckAuth())
	_, ok := kv.Get(store.UserKey)
	assert.False(t, ok)
}

func TestAddPoints(t *testing.T) {
	s, _ := newTestSession()
	_, err := s.AddPoints(100)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Login("user@vulnops.com", "user")
	require.NoError(t, err)

	u, err := s.AddPoints(250)
	require.NoError(t, err)
	assert.Equal(t, 1750, u.Points)
	assert.Equal(t, 1750, s.CheckAuth().Points)
}

func TestSessionContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s, _ := newTestSession()
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestDirectoryUsers(t *testing.T) {
	assert.Len(t, testDir.Users(""), 3)

	ninja := testDir.Users("NINJA")
	require.Len(t, ninja, 1)
	assert.Equal(t, "user456", ninja[0].ID)

	_, ok := testDir.Find("admin123")
	assert.True(t, ok)
	_, ok = testDir.Find("nobody")
	assert.False(t, ok)
}

func TestTokens(t *testing.T) {
	tokens := NewTokens("test-secret")
	u := models.User{ID: "user123", Username: "hacker", Points: 1500}

	signed, err := tokens.Issue(u)
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.Subject)
	assert.Equal(t, u.Username, claims.User.Username)

	_, err = NewTokens("other-secret").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensExpire(t *testing.T) {
	tokens := NewTokens("test-secret")
	issued := time.Now()
	tokens.now = func() time.Time { return issued }
	signed, err := tokens.Issue(models.User{ID: "user123"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(TokenTTL + time.Minute) }
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionFor(t *testing.T) {
	s, err := SessionFor(models.User{ID: "user123", Points: 10}, testDir)
	require.NoError(t, err)

	u, err := s.AddPoints(5)
	require.NoError(t, err)
	assert.Equal(t, 15, u.Points)
}

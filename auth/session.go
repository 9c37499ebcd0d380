// auth/session.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf16"

	"vulnops/models"
	"vulnops/store"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrNotAuthenticated   = errors.New("user not authenticated")
)

// Session tek bir istemcinin oturumu. Kullanıcı kaydı KV içinde
// store.UserKey anahtarında JSON olarak durur.
type Session struct {
	kv  store.KV
	dir *Directory
	now func() time.Time
}

func NewSession(kv store.KV, dir *Directory) *Session {
	return &Session{kv: kv, dir: dir, now: time.Now}
}

// SessionFor, bearer token ile gelen istekler için kullanıcıyı istek
// ömrü boyunca bellekte tutan bir oturum kurar.
func SessionFor(u models.User, dir *Directory) (*Session, error) {
	s := NewSession(store.NewMemoryKV(), dir)
	if err := s.persist(u); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Login(email, password string) (*models.User, error) {
	u, err := s.dir.Authenticate(email, password)
	if err != nil {
		log.Printf("başarısız giriş denemesi: %s", email)
		return nil, err
	}
	u.CreatedAt = s.now().UTC()

	if err := s.persist(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Session) Register(email, username, password string) (*models.User, error) {
	if email == "" || username == "" || password == "" {
		return nil, ErrFieldsRequired
	}
	if len(utf16.Encode([]rune(password))) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	now := s.now().UTC()
	u := models.User{
		ID:        fmt.Sprintf("user_%d", now.UnixMilli()),
		Username:  username,
		Email:     email,
		Points:    0,
		Rank:      999,
		CreatedAt: now,
	}
	if err := s.persist(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Session) Logout() error {
	return s.kv.Remove(store.UserKey)
}

// CheckAuth kayıtlı kullanıcıyı yeniden okur; yoksa nil döner.
func (s *Session) CheckAuth() *models.User {
	raw, ok := s.kv.Get(store.UserKey)
	if !ok {
		return nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		log.Printf("bozuk oturum kaydı siliniyor: %v", err)
		s.kv.Remove(store.UserKey)
		return nil
	}
	return &u
}

// AddPoints kayıtlı kullanıcının puanını n kadar artırır.
func (s *Session) AddPoints(n int) (*models.User, error) {
	u := s.CheckAuth()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	u.Points += n
	if err := s.persist(*u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Session) persist(u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("kullanıcı kaydı serileştirilemedi: %w", err)
	}
	if err := s.kv.Set(store.UserKey, string(data)); err != nil {
		return fmt.Errorf("oturum kaydedilemedi: %w", err)
	}
	return nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// store/store.go
package store

import (
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

// UserKey, oturum açmış kullanıcının JSON kaydını tutan anahtar.
const UserKey = "vulnops-user"

// SessionName cookie adı.
const SessionName = "vulnops_session"

// KV tarayıcıdaki localStorage'ın sunucu tarafındaki karşılığı.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// CookieKV tek bir istek/yanıt çiftine bağlı gorilla session'ı KV olarak sunar.
// Her Set/Remove cookie'yi hemen yazar, bu yüzden gövde yazılmadan önce çağrılmalı.
type CookieKV struct {
	session *sessions.Session
	w       http.ResponseWriter
	r       *http.Request
}

func NewCookieKV(s sessions.Store, w http.ResponseWriter, r *http.Request) *CookieKV {
	// Bozuk cookie'de gorilla yeni bir session döner, o yüzden hata yok sayılıyor
	session, _ := s.Get(r, SessionName)
	return &CookieKV{session: session, w: w, r: r}
}

func (c *CookieKV) Get(key string) (string, bool) {
	v, ok := c.session.Values[key].(string)
	return v, ok
}

func (c *CookieKV) Set(key, value string) error {
	c.session.Values[key] = value
	return c.session.Save(c.r, c.w)
}

func (c *CookieKV) Remove(key string) error {
	delete(c.session.Values, key)
	if len(c.session.Values) == 0 {
		c.session.Options.MaxAge = -1
	}
	return c.session.Save(c.r, c.w)
}

// NewCookieStore uygulamanın kullandığı cookie store'u oluşturur.
func NewCookieStore(secret string, maxAge int) *sessions.CookieStore {
	s := sessions.NewCookieStore([]byte(secret))
	s.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return s
}

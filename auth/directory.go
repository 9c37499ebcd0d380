// auth/directory.go
package auth

import (
	"strings"
	"time"

	"vulnops/models"

	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         models.User
	passwordHash []byte // nil ise bu hesapla giriş yapılamaz
	lastActive   time.Time
}

// Directory platformun bildiği hesaplar. Yalnızca iki hesabın şifresi var.
type Directory struct {
	accounts []account
}

func NewDirectory() *Directory {
	return &Directory{accounts: []account{
		{
			user: models.User{
				ID:        "user123",
				Username:  "hacker",
				Email:     "user@vulnops.com",
				Points:    1500,
				Rank:      10,
				CreatedAt: date("2025-03-10T12:30:00Z"),
			},
			passwordHash: mustHash("user"),
			lastActive:   date("2025-04-05T16:45:00Z"),
		},
		{
			user: models.User{
				ID:        "user456",
				Username:  "security_ninja",
				Email:     "ninja@vulnops.com",
				Points:    3200,
				CreatedAt: date("2025-02-22T09:15:00Z"),
			},
			lastActive: date("2025-04-04T18:20:00Z"),
		},
		{
			user: models.User{
				ID:        "admin123",
				Username:  "admin",
				Email:     "admin@vulnops.com",
				IsAdmin:   true,
				Points:    5000,
				Rank:      1,
				CreatedAt: date("2025-01-15T08:00:00Z"),
			},
			passwordHash: mustHash("admin"),
			lastActive:   date("2025-04-06T10:05:00Z"),
		},
	}}
}

// Authenticate e-posta/şifre çiftini kontrol eder. Dönen kullanıcının
// CreatedAt alanı çağıran tarafından giriş anına ayarlanır.
func (d *Directory) Authenticate(email, password string) (models.User, error) {
	for _, a := range d.accounts {
		if a.user.Email != email || a.passwordHash == nil {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
			break
		}
		return a.user, nil
	}
	return models.User{}, ErrInvalidCredentials
}

func (d *Directory) Find(id string) (models.User, bool) {
	for _, a := range d.accounts {
		if a.user.ID == id {
			return a.user, true
		}
	}
	return models.User{}, false
}

// Users admin panelindeki listeyi döner; query kullanıcı adı ve e-postada aranır.
func (d *Directory) Users(query string) []models.AdminUser {
	q := strings.ToLower(strings.TrimSpace(query))
	users := make([]models.AdminUser, 0, len(d.accounts))
	for _, a := range d.accounts {
		if q != "" &&
			!strings.Contains(strings.ToLower(a.user.Username), q) &&
			!strings.Contains(strings.ToLower(a.user.Email), q) {
			continue
		}
		users = append(users, models.AdminUser{User: a.user, LastActive: a.lastActive})
	}
	return users
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

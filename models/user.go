// models/user.go
package models

import "time"

// User, oturum kaydında JSON olarak saklanan kullanıcı.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Points    int       `json:"points"`
	Rank      int       `json:"rank,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUser admin panelindeki kullanıcı listesi satırı.
type AdminUser struct {
	User
	LastActive time.Time `json:"lastActive"`
}

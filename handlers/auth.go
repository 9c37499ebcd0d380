// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"

	"vulnops/auth"
	"vulnops/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, errBadRequest)
			return
		}

		user, err := currentSession(r).Login(req.Email, req.Password)
		if err != nil {
			fail(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: user})
	}
}

func Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, errBadRequest)
			return
		}

		user, err := currentSession(r).Register(req.Email, req.Username, req.Password)
		if err != nil {
			fail(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Message: "Your account has been created successfully",
			User:    user,
		})
	}
}

func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := currentSession(r).Logout(); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Logged out"})
	}
}

// Me checkAuth karşılığı; oturum yoksa user null döner.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user": currentUser(r),
		})
	}
}

// IssueToken cookie oturumunu Bearer token'a çevirir.
func IssueToken(tokens *auth.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil {
			fail(w, auth.ErrNotAuthenticated)
			return
		}

		token, err := tokens.Issue(*user)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token, User: user})
	}
}

func RefreshToken(tokens *auth.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, errBadRequest)
			return
		}

		// Token'ı doğrula
		claims, err := tokens.Parse(req.Token)
		if err != nil {
			fail(w, err)
			return
		}

		// Yeni token oluştur
		token, err := tokens.Issue(claims.User)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token, User: &claims.User})
	}
}

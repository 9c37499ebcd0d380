// middleware/auth.go
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"vulnops/auth"
	"vulnops/store"

	"github.com/gorilla/sessions"
)

// Session her istek için oturum nesnesini kurar ve context'e koyar.
// Cookie'de kullanıcı yoksa geçerli bir Bearer token'a bakılır.
func Session(cs sessions.Store, dir *auth.Directory, tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := auth.NewSession(store.NewCookieKV(cs, w, r), dir)

			if s.CheckAuth() == nil {
				if token, ok := bearerToken(r); ok {
					if claims, err := tokens.Parse(token); err == nil {
						if ts, err := auth.SessionFor(claims.User, dir); err == nil {
							s = ts
						}
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.FromContext(r.Context())
		if !ok || s.CheckAuth() == nil {
			deny(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminAuth, Auth'tan sonra kullanılır.
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.FromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		u := s.CheckAuth()
		if u == nil {
			deny(w, http.StatusUnauthorized, "User not authenticated")
			return
		}
		if !u.IsAdmin {
			deny(w, http.StatusForbidden, "You don't have permission to access the admin panel.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// fail hatayı HTTP durumuna çevirip {"success": false, "message": ...} yazar.
func fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := userMessage(err)
	if status == http.StatusInternalServerError {
		log.Printf("istek hatası: %v", err)
		message = "An unknown error occurred"
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrFieldsRequired), errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errAlreadySolved):
		return http.StatusConflict
	case errors.Is(err, errEmptyFlag):
		return http.StatusBadRequest
	case errors.Is(err, challenges.ErrChallengeNotFound), errors.Is(err, errUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// userMessage "invalid credentials" -> "Invalid credentials".
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "\n"); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

var (
	errBadRequest   = errors.New("invalid request")
	errUserNotFound = errors.New("user not found")
)

// currentSession Session middleware'inin koyduğu oturumu döner.
func currentSession(r *http.Request) *auth.Session {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		// Router her zaman Session middleware'i ile kurulur
		panic("handlers: request without session")
	}
	return s
}

func currentUser(r *http.Request) *models.User {
	return currentSession(r).CheckAuth()
}

// clientIP geçerli bir adres taşıyorsa X-Forwarded-For'un ilk değerini,
// aksi halde bağlantı adresini döner.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := net.ParseIP(strings.TrimSpace(strings.Split(fwd, ",")[0])); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

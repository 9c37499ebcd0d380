// handlers/router.go
package handlers

import (
	"net/http"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/database"
	"vulnops/feed"
	"vulnops/leaderboard"
	"vulnops/middleware"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// App router'ın ihtiyaç duyduğu servisler.
type App struct {
	Sessions  sessions.Store
	Directory *auth.Directory
	Tokens    *auth.Tokens
	Registry  *challenges.Registry
	Board     *leaderboard.Board
	Solves    database.SolveRepository
	Feed      *feed.Hub
}

func NewRouter(app App) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Session(app.Sessions, app.Directory, app.Tokens))
	r.NotFoundHandler = NotFound()

	// API Router
	api := r.PathPrefix("/api").Subrouter()

	// Public API endpoints
	api.HandleFunc("/auth/login", Login()).Methods("POST")
	api.HandleFunc("/auth/register", Register()).Methods("POST")
	api.HandleFunc("/auth/logout", Logout()).Methods("POST")
	api.HandleFunc("/auth/me", Me()).Methods("GET")
	api.HandleFunc("/auth/refresh", RefreshToken(app.Tokens)).Methods("POST")

	api.HandleFunc("/challenges", GetChallenges(app.Registry)).Methods("GET")
	api.HandleFunc("/challenges/{id}", GetChallenge(app.Registry)).Methods("GET")
	api.HandleFunc("/users/{id}/solves", GetUserSolves(app.Registry)).Methods("GET")
	api.HandleFunc("/leaderboard", GetLeaderboard(app.Board)).Methods("GET")
	api.HandleFunc("/profile/{id}", GetProfile(app.Registry, app.Directory, app.Board)).Methods("GET")

	// Protected API endpoints
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/auth/token", IssueToken(app.Tokens)).Methods("POST")
	protected.HandleFunc("/profile", GetMyProfile(app.Registry, app.Directory, app.Board)).Methods("GET")
	protected.HandleFunc("/challenges/{id}/submit", SubmitFlag(app.Registry, app.Solves, app.Feed)).Methods("POST")

	// Admin API
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminAuth)

	admin.HandleFunc("/users", AdminUsers(app.Directory)).Methods("GET")
	admin.HandleFunc("/challenges", AdminChallenges(app.Registry)).Methods("GET")
	admin.HandleFunc("/challenges", AdminCreateChallenge()).Methods("POST")
	admin.HandleFunc("/solves", AdminSolves(app.Solves)).Methods("GET")
	admin.HandleFunc("/stats", AdminStats(app.Registry, app.Directory, app.Solves)).Methods("GET")

	// Canlı çözüm akışı
	r.HandleFunc("/ws/feed", app.Feed.ServeWS).Methods("GET")

	// Page routes (HTML templates)
	r.HandleFunc("/", HomePage(app.Registry, app.Board)).Methods("GET")
	r.HandleFunc("/login", LoginPage()).Methods("GET")
	r.HandleFunc("/login", LoginForm()).Methods("POST")
	r.HandleFunc("/register", RegisterPage()).Methods("GET")
	r.HandleFunc("/register", RegisterForm()).Methods("POST")
	r.HandleFunc("/logout", LogoutForm()).Methods("POST")
	r.HandleFunc("/challenges", ChallengesPage(app.Registry)).Methods("GET")
	r.HandleFunc("/challenges/{id}", ChallengeDetailPage(app.Registry)).Methods("GET")
	r.HandleFunc("/challenges/{id}", SubmitFlagForm(app.Registry, app.Solves, app.Feed)).Methods("POST")
	r.HandleFunc("/leaderboard", LeaderboardPage(app.Board)).Methods("GET")
	r.HandleFunc("/profile", MyProfilePage(app.Registry, app.Directory, app.Board)).Methods("GET")
	r.HandleFunc("/profile/{id}", ProfilePage(app.Registry, app.Directory, app.Board)).Methods("GET")
	r.HandleFunc("/admin", AdminPage(app.Registry, app.Directory, app.Solves)).Methods("GET")

	return r
}

// Handler router'ı CORS ile sarar.
func Handler(app App, origins []string) http.Handler {
	return middleware.CORS(origins)(NewRouter(app))
}

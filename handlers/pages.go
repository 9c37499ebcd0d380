// handlers/pages.go
package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/database"
	"vulnops/feed"
	"vulnops/leaderboard"
	"vulnops/models"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"initials": leaderboard.Initials,
	"lastActive": func(t time.Time) string {
		return leaderboard.LastActiveLabel(t, time.Now())
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
	"lower": strings.ToLower,
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"index", "login", "register", "challenges", "challenge_detail",
		"leaderboard", "profile", "admin", "notfound",
	} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
}

func render(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("şablon hatası (%s): %v", name, err)
	}
}

// pageData tüm sayfalarda ortak alanlar. NotFound handler'ı middleware
// zincirinin dışında çalıştığı için oturum olmayabilir.
func pageData(r *http.Request, title string) map[string]interface{} {
	var user *models.User
	if s, ok := auth.FromContext(r.Context()); ok {
		user = s.CheckAuth()
	}
	return map[string]interface{}{
		"Title":           title + " - VulnOps",
		"User":            user,
		"IsAuthenticated": user != nil,
	}
}

func HomePage(reg *challenges.Registry, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData(r, "Home")
		all := reg.All()
		if len(all) > 3 {
			all = all[:3]
		}
		data["Featured"] = all
		data["TotalChallenges"] = reg.Count()
		data["TopPlayers"] = board.Top(5)
		if user := currentUser(r); user != nil {
			data["Progress"] = reg.Progress(user.ID)
		}
		render(w, http.StatusOK, "index", data)
	}
}

// ============ GİRİŞ / KAYIT ============

func LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		render(w, http.StatusOK, "login", pageData(r, "Login"))
	}
}

func LoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		user, err := currentSession(r).Login(email, r.FormValue("password"))
		if err != nil {
			data := pageData(r, "Login")
			data["Error"] = userMessage(err)
			data["Email"] = email
			render(w, statusFor(err), "login", data)
			return
		}

		if user.IsAdmin {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/challenges", http.StatusSeeOther)
	}
}

func RegisterPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		render(w, http.StatusOK, "register", pageData(r, "Register"))
	}
}

func RegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		username := r.FormValue("username")
		password := r.FormValue("password")

		reject := func(status int, message string) {
			data := pageData(r, "Register")
			data["Error"] = message
			data["Email"] = email
			data["Username"] = username
			render(w, status, "register", data)
		}

		if password != r.FormValue("confirmPassword") {
			reject(http.StatusBadRequest, "Passwords do not match")
			return
		}
		if _, err := currentSession(r).Register(email, username, password); err != nil {
			reject(statusFor(err), userMessage(err))
			return
		}
		http.Redirect(w, r, "/challenges", http.StatusSeeOther)
	}
}

func LogoutForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := currentSession(r).Logout(); err != nil {
			log.Printf("çıkış yapılamadı: %v", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// ============ CHALLENGE'LAR ============

func ChallengesPage(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := filterFrom(r)
		if err != nil {
			// Geçersiz seçimler yok sayılır
			if !f.Difficulty.Valid() {
				f.Difficulty = ""
			}
			if !f.Type.Valid() {
				f.Type = ""
			}
		}

		data := pageData(r, "Challenges")
		var userID string
		if user := currentUser(r); user != nil {
			userID = user.ID
			data["Progress"] = reg.Progress(userID)
		}
		data["Challenges"] = reg.Filter(userID, f)
		data["Categories"] = reg.Categories()
		data["Filter"] = f
		data["Difficulties"] = []models.Difficulty{models.Easy, models.Medium, models.Hard, models.Insane}
		data["Types"] = []models.ChallengeType{models.TypeVM, models.TypeFile}
		render(w, http.StatusOK, "challenges", data)
	}
}

func challengeData(r *http.Request, reg *challenges.Registry, c models.Challenge) map[string]interface{} {
	data := pageData(r, c.Title)
	view := models.ChallengeView{Challenge: c}
	if user := currentUser(r); user != nil {
		view.IsSolved = reg.IsSolved(user.ID, c.ID)
	}
	data["Challenge"] = view
	return data
}

func ChallengeDetailPage(reg *challenges.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := reg.GetChallengeByID(mux.Vars(r)["id"])
		if !ok {
			notFound(w, r, "Challenge Not Found")
			return
		}
		render(w, http.StatusOK, "challenge_detail", challengeData(r, reg, c))
	}
}

func SubmitFlagForm(reg *challenges.Registry, solves database.SolveRepository, hub *feed.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if currentUser(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		res, _, err := submit(r, reg, solves, hub, id, r.FormValue("flag"))
		if errors.Is(err, challenges.ErrChallengeNotFound) {
			notFound(w, r, "Challenge Not Found")
			return
		}

		c, _ := reg.GetChallengeByID(id)
		data := challengeData(r, reg, c)
		status := http.StatusOK
		switch {
		case err != nil:
			status = statusFor(err)
			data["Error"] = userMessage(err)
		case !res.Correct:
			data["Error"] = "The submitted flag is not correct. Try again!"
		default:
			data["Solved"] = res
		}
		render(w, status, "challenge_detail", data)
	}
}

// ============ SIRALAMA / PROFİL ============

func LeaderboardPage(board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData(r, "Leaderboard")
		var userID string
		if user := currentUser(r); user != nil {
			userID = user.ID
		}
		search := r.URL.Query().Get("search")
		data["Search"] = search
		data["Entries"] = board.Entries(search, userID)
		render(w, http.StatusOK, "leaderboard", data)
	}
}

func MyProfilePage(reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		profilePage(w, r, reg, dir, board, "")
	}
}

func ProfilePage(reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profilePage(w, r, reg, dir, board, mux.Vars(r)["id"])
	}
}

func profilePage(w http.ResponseWriter, r *http.Request, reg *challenges.Registry, dir *auth.Directory, board *leaderboard.Board, id string) {
	profile, err := profileFor(r, reg, dir, board, id)
	if err != nil {
		notFound(w, r, "User Not Found")
		return
	}
	data := pageData(r, profile.User.Username)
	data["Profile"] = profile
	render(w, http.StatusOK, "profile", data)
}

// ============ ADMIN ============

func AdminPage(reg *challenges.Registry, dir *auth.Directory, solves database.SolveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsAdmin {
			log.Printf("admin paneline yetkisiz erişim: %s", user.Username)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		stats, err := platformStats(r.Context(), reg, dir, solves, time.Now())
		if err != nil {
			log.Printf("admin istatistikleri alınamadı: %v", err)
		}
		recent, err := solves.Recent(r.Context(), defaultSolveLimit)
		if err != nil {
			log.Printf("çözüm geçmişi alınamadı: %v", err)
		}

		data := pageData(r, "Admin")
		data["Stats"] = stats
		data["Users"] = dir.Users(r.URL.Query().Get("search"))
		data["Challenges"] = reg.All()
		data["Solves"] = recent
		render(w, http.StatusOK, "admin", data)
	}
}

// ============ 404 ============

func notFound(w http.ResponseWriter, r *http.Request, heading string) {
	data := pageData(r, "Not Found")
	data["Heading"] = heading
	render(w, http.StatusNotFound, "notfound", data)
}

// NotFound API yolları için JSON, diğerleri için 404 sayfası döner.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("404: %s %s", r.Method, r.URL.Path)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": "Not found",
			})
			return
		}
		notFound(w, r, "Page Not Found")
	}
}

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/mis883/janus-pharma-portal/internal/http/handlers"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Seeded credentials must be stored hashed, never as plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM users`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no users seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, "admin123") || strings.Contains(h, "user123") {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
	}
	var adminHash string
	if err := db.Get(&adminHash, `SELECT password_hash FROM users WHERE username='admin'`); err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte("admin123")); err != nil {
		t.Fatalf("seed hash does not validate known password: %v", err)
	}
}

func postLogin(t *testing.T, app *fiber.App, csrfTok, username, password string) *http.Response {
	t.Helper()
	form := strings.NewReader("csrf=" + csrfTok + "&username=" + username + "&password=" + password)
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestLoginSuccessFailBlockedAndThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{Max: 4, Expiration: time.Minute}), authH.Login)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := cookieValue(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	// wrong password -> 401
	if resp := postLogin(t, app, csrfTok, "distributor", "wrongpass"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", resp.StatusCode)
	}
	// unknown user -> same 401, no oracle
	if resp := postLogin(t, app, csrfTok, "nobody", "whatever1"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user: want 401, got %d", resp.StatusCode)
	}

	// success -> redirect with a bound session
	respGood := postLogin(t, app, csrfTok, "distributor", "user123")
	if respGood.StatusCode != http.StatusFound {
		t.Fatalf("good creds: want 302, got %d", respGood.StatusCode)
	}
	sid := cookieValue(respGood, "sid")
	if sid == "" {
		t.Fatal("no session cookie on success")
	}
	u, err := authSvc.CurrentUser(sid)
	if err != nil || u == nil || u.Username != "distributor" {
		t.Fatalf("session not bound: %v %+v", err, u)
	}

	// blocked account is refused even with the right password
	if err := userRepo.SetBlocked(u.ID, true); err != nil {
		t.Fatal(err)
	}
	if resp := postLogin(t, app, csrfTok, "distributor", "user123"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("blocked login: want 403, got %d", resp.StatusCode)
	}

	// fifth attempt trips the throttle
	if resp := postLogin(t, app, csrfTok, "distributor", "user123"); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("throttle: want 429, got %d", resp.StatusCode)
	}
}

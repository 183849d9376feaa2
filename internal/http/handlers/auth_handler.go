package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username, ok := validate.Username(c.FormValue("username"))
	if !ok || !validate.Password(c.FormValue("password")) {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid username or password."})
	}

	_, err := h.Auth.Login(sid, username, c.FormValue("password"))
	if errors.Is(err, services.ErrBlocked) {
		log.Security(c, "auth.login.blocked", map[string]any{"username": username})
		return c.Status(403).Render("login", fiber.Map{"Err": "Your account has been blocked. Contact Admin."})
	}
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid username or password."})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}

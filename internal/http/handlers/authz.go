package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

// RequireUser enforces a logged-in session; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.IsBlocked {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireStaff admits STAFF and ADMIN roles.
func RequireStaff(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, "access.denied.staff", func(r domain.Role) bool { return r.CanProcessOrders() })
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, "access.denied.admin", func(r domain.Role) bool { return r == domain.RoleAdmin })
}

func requireRole(auth *services.AuthService, denyAction string, allowed func(domain.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.IsBlocked || !allowed(u.Role) {
			applog.Security(c, denyAction, map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

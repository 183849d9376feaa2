package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mis883/janus-pharma-portal/internal/services"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}

// ensureSID returns the session cookie, minting one when absent.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
		})
	}
	return sid
}

// failStatus maps service errors onto HTTP statuses.
func failStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrMissingField), errors.Is(err, services.ErrCartEmpty):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

type DashboardHandler struct {
	Catalog  *services.CatalogService
	Restock  *services.RestockService
	Settings *repos.SettingsRepo
}

func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)

	banners, err := h.Settings.Banners()
	if err != nil {
		applog.Error(c, "dashboard.banners", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	news, _ := h.Settings.News()
	launches, _ := h.Catalog.NewLaunches(time.Now())
	trending, _ := h.Catalog.Trending()

	var suggestions []domain.Product
	if u != nil && u.Role == domain.RoleCustomer {
		suggestions, _ = h.Restock.Suggestions(u.ID, time.Now())
	}

	return render(c, "home", fiber.Map{
		"Banners":     banners,
		"News":        news,
		"NewLaunches": launches,
		"Trending":    trending,
		"Restock":     suggestions,
	})
}

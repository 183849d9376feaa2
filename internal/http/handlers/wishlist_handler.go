package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	items, err := h.Wish.List(sid)
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load wishlist"})
	}
	return render(c, "wishlist", fiber.Map{"Items": items})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Wish.Save(sid, pid); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not save item")
	}
	back := c.Get("Referer")
	if back == "" {
		back = "/wishlist"
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return c.Redirect(back)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Wish.Unsave(sid, pid); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return c.Redirect("/wishlist")
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"
)

type CartHandler struct {
	Cart   *services.CartService
	Order  *services.OrderService
	Notify *services.NotifyService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if err := h.Cart.Add(sid, pid, qty); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product": pid})
		return c.Status(failStatus(err)).SendString("Could not add item")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.SetQty(sid, pid, validate.Qty(c.FormValue("qty"))); err != nil {
		return c.Status(failStatus(err)).SendString("Could not update item")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, pid); err != nil {
		return c.Status(failStatus(err)).SendString("Could not remove item")
	}
	return c.Redirect("/cart")
}

// Checkout turns the cart into a Pending order and hands the inquiry
// summary to the messaging channel. The redirect is the dispatch:
// best-effort, no delivery confirmation.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)

	o, err := h.Order.Place(u, sid)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(failStatus(err)).Render("notfound", fiber.Map{"Message": "Could not place the order. Please review your cart and try again."})
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"total":    o.TotalInquiryValue.String(),
	})

	_, lines, err := h.Order.Get(u, o.ID)
	if err != nil {
		return c.Redirect("/orders")
	}
	link, err := h.Notify.Link(h.Notify.FormatOrder(o, lines))
	if err != nil {
		// Order is placed either way; the handoff is best-effort.
		applog.Error(c, "order.notify", err, map[string]any{"order_id": o.ID})
		return c.Redirect("/orders")
	}
	return c.Redirect(link)
}

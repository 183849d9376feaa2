package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// List shows the actor's orders: customers their own, staff all.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	orders, err := h.Order.ListFor(u)
	if err != nil {
		applog.Error(c, "orders.list", err, nil)
		return c.Status(failStatus(err)).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, lines, err := h.Order.Get(u, oid)
	if err != nil {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o, "Lines": lines})
}

// SubmitProof records the customer's payment screenshot.
func (h *OrderHandler) SubmitProof(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	proof, ok := validate.FileRef(c.FormValue("proofUrl"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "proofUrl", "order_id": oid})
		return c.Status(400).SendString("missing payment proof")
	}

	if err := h.Order.SubmitProof(u, oid, proof); err != nil {
		applog.Error(c, "order.proof.fail", err, map[string]any{"order_id": oid})
		return c.Status(failStatus(err)).SendString("Could not submit payment proof")
	}
	applog.Audit(c, "order.proof", map[string]any{"order_id": oid})
	return c.Redirect("/order/" + oid)
}

// ---------- Staff transitions ----------

func (h *OrderHandler) MarkProcessing(c *fiber.Ctx) error {
	return h.transition(c, "order.processing", func(u *domain.User, oid string) error {
		return h.Order.MarkProcessing(u, oid)
	})
}

func (h *OrderHandler) RequestPayment(c *fiber.Ctx) error {
	amount, okAmt := validate.Amount(c.FormValue("finalAmount"))
	invoice, okInv := validate.FileRef(c.FormValue("invoiceUrl"))
	if !okAmt || !okInv {
		applog.Security(c, "validation.fail", map[string]any{"field": "finalAmount/invoiceUrl"})
		return c.Status(400).SendString("final amount and invoice are required")
	}
	return h.transition(c, "order.request_payment", func(u *domain.User, oid string) error {
		return h.Order.RequestPayment(u, oid, amount, invoice)
	})
}

func (h *OrderHandler) Dispatch(c *fiber.Ctx) error {
	docket, ok := validate.Docket(c.FormValue("docketNumber"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "docketNumber"})
		return c.Status(400).SendString("docket number is required")
	}
	transport := c.FormValue("transportDetails")
	return h.transition(c, "order.dispatch", func(u *domain.User, oid string) error {
		return h.Order.Dispatch(u, oid, docket, transport)
	})
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, "order.cancel", func(u *domain.User, oid string) error {
		return h.Order.Cancel(u, oid)
	})
}

func (h *OrderHandler) transition(c *fiber.Ctx, action string, op func(*domain.User, string) error) error {
	u, _ := c.Locals("user").(*domain.User)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).SendString("order not found")
	}
	if err := op(u, oid); err != nil {
		applog.Error(c, action+".fail", err, map[string]any{"order_id": oid})
		return c.Status(failStatus(err)).SendString("Could not update order")
	}
	applog.Audit(c, action, map[string]any{"order_id": oid})
	return c.Redirect("/orders")
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mis883/janus-pharma-portal/internal/ai"
	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Notify  *services.NotifyService
	Advisor ai.Advisor
}

// List renders the filtered catalog. `division` is a plain query
// parameter; presets like "Critical Care" or "Marketing Inputs" are
// just values of it.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	division := strings.TrimSpace(c.Query("division"))
	if division == "" {
		division = "All"
	}

	products, err := h.Catalog.List(q, division)
	if err != nil {
		applog.Error(c, "catalog.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	divisions, _ := h.Catalog.Divisions()

	return render(c, "catalog", fiber.Map{
		"Q": q, "Division": division,
		"Divisions": divisions,
		"Products":  products, "Count": len(products),
	})
}

// Compare renders up to four products side by side. Unknown ids are
// skipped rather than failing the whole page.
func (h *CatalogHandler) Compare(c *fiber.Ctx) error {
	var products []domain.Product
	for _, raw := range strings.Split(c.Query("ids"), ",") {
		id, ok := validate.ID(raw)
		if !ok {
			continue
		}
		p, err := h.Catalog.Get(id)
		if err != nil {
			continue
		}
		products = append(products, p)
		if len(products) == 4 {
			break
		}
	}
	return render(c, "compare", fiber.Map{"Products": products})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This product is not available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This product is not available"})
	}
	return render(c, "product", fiber.Map{"P": p, "Tags": p.Tags()})
}

// Share hands a product card to the messaging channel, captioned by
// the AI collaborator when available.
func (h *CatalogHandler) Share(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This product is not available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This product is not available"})
	}

	caption := h.Advisor.Caption(c.Context(), p)
	if caption == ai.MsgCaptionMissing || caption == ai.MsgCaptionFailed {
		caption = ""
	}
	link, err := h.Notify.Link(h.Notify.FormatProduct(p, caption))
	if err != nil {
		applog.Error(c, "catalog.share", err, map[string]any{"product": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Sharing is not configured"})
	}
	applog.Info(c, "catalog.share", map[string]any{"product": id})
	return c.Redirect(link)
}

// Assist answers a free-text product question against the catalog.
// The collaborator degrades to a fixed message; this endpoint never
// fails because the provider did.
func (h *CatalogHandler) Assist(c *fiber.Ctx) error {
	q := validate.Q(c.FormValue("q"))
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing query"})
	}
	catalog, err := h.Catalog.All()
	if err != nil {
		applog.Error(c, "catalog.assist", err, nil)
		return c.Status(500).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	answer := h.Advisor.AnalyzeQuery(c.Context(), q, catalog)
	return c.JSON(fiber.Map{"answer": answer})
}

// VisualSearch matches an uploaded package photo against the catalog.
func (h *CatalogHandler) VisualSearch(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "missing image"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable image"})
	}
	defer f.Close()
	buf := make([]byte, file.Size)
	if _, err := f.Read(buf); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "unreadable image"})
	}

	catalog, err := h.Catalog.All()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	match := h.Advisor.IdentifyFromImage(c.Context(), buf, catalog)
	applog.Info(c, "catalog.visual_search", map[string]any{"match": match})
	return c.JSON(fiber.Map{"match": match})
}

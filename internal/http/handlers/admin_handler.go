package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mis883/janus-pharma-portal/internal/ai"
	"github.com/mis883/janus-pharma-portal/internal/domain"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
	"github.com/mis883/janus-pharma-portal/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	Catalog  *services.CatalogService
	Orders   *repos.OrderRepo
	Users    *repos.UserRepo
	Settings *repos.SettingsRepo
	Advisor  ai.Advisor
}

func actor(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.All()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	divisions, _ := h.Catalog.Divisions()

	var edit *domain.Product
	if id, ok := validate.ID(c.Query("edit")); ok {
		if p, err := h.Catalog.Get(id); err == nil {
			edit = &p
		}
	}
	return render(c, "admin_products", fiber.Map{"Products": products, "Divisions": divisions, "Edit": edit})
}

// POST /admin/products
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	brand, okBrand := validate.Name(c.FormValue("brandName"))
	mrp, okMRP := validate.Price(c.FormValue("mrp"))
	launch, okDate := validate.Date(c.FormValue("launchDate"))
	if !okBrand || !okMRP || !okDate {
		applog.Security(c, "validation.fail", map[string]any{"field": "brandName/mrp/launchDate"})
		return c.Status(400).SendString("invalid product input")
	}

	id := c.FormValue("id")
	isNew := id == ""
	if isNew {
		id = "p-" + uuid.NewString()[:8]
	} else if _, ok := validate.ID(id); !ok {
		return c.Status(400).SendString("invalid product id")
	}

	p := domain.Product{
		ID:            id,
		BrandName:     brand,
		Composition:   strings.TrimSpace(c.FormValue("composition")),
		Division:      strings.TrimSpace(c.FormValue("division")),
		Packing:       strings.TrimSpace(c.FormValue("packing")),
		MRP:           mrp,
		StockStatus:   domain.StockStatus(c.FormValue("stockStatus")),
		ImageURL:      strings.TrimSpace(c.FormValue("imageUrl")),
		VisualAidURL:  strings.TrimSpace(c.FormValue("visualAidUrl")),
		VideoURL:      strings.TrimSpace(c.FormValue("videoUrl")),
		LaunchDate:    launch,
		IsTrending:    c.FormValue("isTrending") == "on",
		IsPromotional: c.FormValue("isPromotional") == "on",
	}

	tags := splitTags(c.FormValue("tags"))
	if len(tags) == 0 {
		// Best effort: the advisor suggests keywords, and an
		// unconfigured provider just leaves them empty.
		tags = h.Advisor.Tags(c.Context(), p.BrandName, p.Composition)
	}
	p.SetTags(tags)

	if err := h.Catalog.Save(actor(c), p, isNew); err != nil {
		applog.Error(c, "admin.products.save.fail", err, map[string]any{"product": p.ID})
		return c.Status(failStatus(err)).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.save", map[string]any{"product": p.ID, "new": isNew})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/trending
func (h *AdminHandler) ToggleTrending(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.ToggleTrending(actor(c), id); err != nil {
		return c.Status(failStatus(err)).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.trending", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ---------- Users ----------

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/users
func (h *AdminHandler) SaveUser(c *fiber.Ctx) error {
	username, okU := validate.Username(c.FormValue("username"))
	name, okN := validate.Name(c.FormValue("name"))
	role := domain.Role(c.FormValue("role"))
	if !okU || !okN || (role != domain.RoleAdmin && role != domain.RoleStaff && role != domain.RoleCustomer) {
		applog.Security(c, "validation.fail", map[string]any{"field": "username/name/role"})
		return c.Status(400).SendString("invalid user input")
	}

	id := c.FormValue("id")
	if id == "" {
		// create: password required
		pass := c.FormValue("password")
		if !validate.Password(pass) {
			return c.Status(400).SendString("password must be 6-64 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), 12)
		if err != nil {
			return err
		}
		u := domain.User{
			ID:       "u-" + uuid.NewString()[:8],
			Username: username,
			Name:     name,
			Hash:     string(hash),
			Role:     role,
		}
		if err := h.Users.Insert(u); err != nil {
			applog.Error(c, "admin.users.create.fail", err, map[string]any{"username": username})
			return c.Status(400).SendString("could not create user")
		}
		applog.Audit(c, "admin.users.create", map[string]any{"user_id": u.ID, "role": role})
		return c.Redirect("/admin/users")
	}

	existing, err := h.Users.ByID(id)
	if err != nil {
		return c.Status(404).SendString("user not found")
	}
	existing.Name = name
	existing.Role = role
	if err := h.Users.Update(*existing); err != nil {
		applog.Error(c, "admin.users.update.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not update user")
	}
	applog.Audit(c, "admin.users.update", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}

// POST /admin/users/:id/block
func (h *AdminHandler) ToggleBlock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	u, err := h.Users.ByID(id)
	if err != nil {
		return c.Status(404).SendString("user not found")
	}
	if u.ID == actor(c).ID {
		return c.Status(400).SendString("cannot block yourself")
	}
	if err := h.Users.SetBlocked(id, !u.IsBlocked); err != nil {
		applog.Error(c, "admin.users.block.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not update user")
	}
	applog.Audit(c, "admin.users.block", map[string]any{"user_id": id, "blocked": !u.IsBlocked})
	return c.Redirect("/admin/users")
}

// ---------- Settings / content ----------

// GET /admin/settings
func (h *AdminHandler) SettingsPage(c *fiber.Ctx) error {
	settings, err := h.Settings.Get()
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load settings"})
	}
	news, _ := h.Settings.News()
	banners, _ := h.Settings.Banners()
	return render(c, "admin_settings", fiber.Map{
		"Settings": settings,
		"News":     strings.Join(news, "\n"),
		"Banners":  banners,
	})
}

// POST /admin/settings
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	name, okN := validate.Name(c.FormValue("name"))
	phone, okP := validate.Phone(c.FormValue("phone"))
	wa, okW := validate.Phone(c.FormValue("whatsappNumber"))
	if !okN || !okP || !okW {
		applog.Security(c, "validation.fail", map[string]any{"field": "name/phone/whatsappNumber"})
		return c.Status(400).SendString("invalid settings input")
	}
	s := domain.CompanySettings{
		Name:           name,
		Address:        strings.TrimSpace(c.FormValue("address")),
		Phone:          phone,
		LogoURL:        strings.TrimSpace(c.FormValue("logoUrl")),
		WhatsAppNumber: wa,
		FacebookURL:    strings.TrimSpace(c.FormValue("facebookUrl")),
		InstagramURL:   strings.TrimSpace(c.FormValue("instagramUrl")),
	}
	if err := h.Settings.Update(s); err != nil {
		applog.Error(c, "admin.settings.save.fail", err, nil)
		return c.Status(400).SendString("could not save settings")
	}
	applog.Audit(c, "admin.settings.save", nil)
	return c.Redirect("/admin/settings")
}

// POST /admin/news — textarea, one headline per line.
func (h *AdminHandler) SaveNews(c *fiber.Ctx) error {
	var headlines []string
	for _, line := range strings.Split(c.FormValue("news"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			headlines = append(headlines, line)
		}
	}
	if err := h.Settings.ReplaceNews(headlines); err != nil {
		applog.Error(c, "admin.news.save.fail", err, nil)
		return c.Status(400).SendString("could not save news")
	}
	applog.Audit(c, "admin.news.save", map[string]any{"count": len(headlines)})
	return c.Redirect("/admin/settings")
}

// POST /admin/assist — back-office question over a live data summary.
func (h *AdminHandler) Assist(c *fiber.Ctx) error {
	q := validate.Q(c.FormValue("q"))
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing query"})
	}
	products, err := h.Catalog.All()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "data unavailable"})
	}
	orders, err := h.Orders.ListAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "data unavailable"})
	}
	byStatus := map[domain.OrderStatus]int{}
	for _, o := range orders {
		byStatus[o.Status]++
	}
	contextData := fmt.Sprintf("%d products in catalog; %d orders (%d pending, %d payment requested, %d dispatched)",
		len(products), len(orders),
		byStatus[domain.OrderPending], byStatus[domain.OrderPaymentRequested], byStatus[domain.OrderDispatched])

	answer := h.Advisor.AdminAssist(c.Context(), q, contextData)
	return c.JSON(fiber.Map{"answer": answer})
}

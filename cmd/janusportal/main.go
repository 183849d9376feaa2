package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/mis883/janus-pharma-portal/internal/config"
	"github.com/mis883/janus-pharma-portal/internal/http/handlers"
	applog "github.com/mis883/janus-pharma-portal/internal/log"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard; visual search posts base64 images, so the
	// cap has to leave room for a data URL on top of the form overhead.
	app.Server().MaxRequestBodySize = 3 << 20 // 3 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			formTok := c.FormValue("csrf")
			applog.Security(c, "csrf.fail", map[string]any{"form": formTok})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /media  -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	aiLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|ai"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.ai.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// Public pages
	app.Get("/", deps.DashboardHandler.Home)
	app.Get("/catalog", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.CatalogHandler.List)
	app.Post("/catalog/assist", aiLimiter, deps.CatalogHandler.Assist)
	app.Post("/catalog/visual-search", aiLimiter, deps.CatalogHandler.VisualSearch)
	app.Get("/compare", deps.CatalogHandler.Compare)

	// Product pages
	app.Get("/product", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	})
	app.Get("/product/:id", deps.CatalogHandler.Detail)
	app.Get("/product/:id/share", deps.CatalogHandler.Share)

	// Cart & checkout (customer)
	customer := handlers.RequireUser(authSvc)
	app.Get("/cart", customer, deps.CartHandler.View)
	app.Post("/cart", customer, deps.CartHandler.Add)
	app.Post("/cart/update", customer, deps.CartHandler.Update)
	app.Post("/cart/delete", customer, deps.CartHandler.Remove)
	app.Post("/checkout", customer, deps.CartHandler.Checkout)

	// Orders
	app.Get("/orders", customer, deps.OrderHandler.List)
	app.Get("/order/:id", customer, deps.OrderHandler.View)
	app.Post("/order/:id/proof", customer, deps.OrderHandler.SubmitProof)

	// Order processing (staff & admin)
	staff := app.Group("/staff", handlers.RequireStaff(authSvc))
	staff.Post("/order/:id/processing", deps.OrderHandler.MarkProcessing)
	staff.Post("/order/:id/request-payment", deps.OrderHandler.RequestPayment)
	staff.Post("/order/:id/dispatch", deps.OrderHandler.Dispatch)
	staff.Post("/order/:id/cancel", deps.OrderHandler.Cancel)

	// Wishlist
	app.Get("/wishlist", deps.WishlistHandler.List)
	app.Post("/wishlist", deps.WishlistHandler.Save)
	app.Post("/wishlist/delete", deps.WishlistHandler.Unsave)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/products", deps.AdminHandler.ProductsPage)
	admin.Post("/products", deps.AdminHandler.SaveProduct)
	admin.Post("/products/:id/trending", deps.AdminHandler.ToggleTrending)
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Post("/users", deps.AdminHandler.SaveUser)
	admin.Post("/users/:id/block", deps.AdminHandler.ToggleBlock)
	admin.Get("/settings", deps.AdminHandler.SettingsPage)
	admin.Post("/settings", deps.AdminHandler.SaveSettings)
	admin.Post("/news", deps.AdminHandler.SaveNews)
	admin.Post("/assist", aiLimiter, deps.AdminHandler.Assist)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/mis883/janus-pharma-portal/internal/ai"
	"github.com/mis883/janus-pharma-portal/internal/config"
	"github.com/mis883/janus-pharma-portal/internal/repos"
	"github.com/mis883/janus-pharma-portal/internal/services"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	CatalogHandler   *CatalogHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	WishlistHandler  *WishlistHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	userRepo := repos.NewUserRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	notifySvc := services.NewNotifyService(settingsRepo)
	restockSvc := services.NewRestockService(orderRepo, prodRepo)
	advisor := ai.NewGemini(cfg.GeminiAPIKey)

	return &Deps{
		DashboardHandler: &DashboardHandler{Catalog: catalogSvc, Restock: restockSvc, Settings: settingsRepo},
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc, Notify: notifySvc, Advisor: advisor},
		CartHandler:      &CartHandler{Cart: cartSvc, Order: orderSvc, Notify: notifySvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, Orders: orderRepo, Users: userRepo, Settings: settingsRepo, Advisor: advisor},
	}
}

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/sandraboakye128-png/desco-preorder-store/internal/config"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/handler"
	"github.com/sandraboakye128-png/desco-preorder-store/internal/middleware"
)

// /api配下の全ハンドラ
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	AdminOrder    *handler.AdminOrderHandler
	LandingImages *handler.ImageHandler
	AboutImages   *handler.ImageHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	authMW := middleware.AuthJWT(cfg)
	adminMW := middleware.AdminRoleGuard()

	h.Auth.RegisterRoutes(api, middleware.AuthRateLimit(cfg.AuthRateLimit))
	h.Product.RegisterRoutes(api, authMW, adminMW)
	h.Cart.RegisterRoutes(api, authMW)
	h.Order.RegisterRoutes(api, authMW)
	h.AdminOrder.RegisterRoutes(api, authMW, adminMW)
	h.LandingImages.RegisterRoutes(api, authMW, adminMW)
	h.AboutImages.RegisterRoutes(api, authMW, adminMW)
}

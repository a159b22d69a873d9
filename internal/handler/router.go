package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/middleware"
	"go-catat-jualan/internal/service"
	"go-catat-jualan/internal/ws"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Inventory service.InventoryService
	Orders    service.OrderService
	Shop      service.ShopService
	Costs     service.OperationalCostService
	Admin     service.AdminService
	Reports   service.ReportService
}

type AppConfig struct {
	AppName         string
	CORSOrigins     []string
	StoreConfigured bool
	AccessLog       bool
}

// NewApp builds the fiber app with every route mounted. hub may be nil,
// in which case /ws is not served.
func NewApp(cfg AppConfig, svc Services, hub *ws.Hub, log logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	if cfg.AccessLog {
		app.Use(logger.New()) // Logging request
	}
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	authHandler := NewAuthHandler(svc.Auth, log)
	invHandler := NewInventoryHandler(svc.Inventory, log)
	orderHandler := NewOrderHandler(svc.Orders, log)
	shopHandler := NewShopHandler(svc.Shop, svc.Costs, log)
	reportHandler := NewReportHandler(svc.Reports, log)
	adminHandler := NewAdminHandler(svc.Admin, svc.Orders, log)

	requireAuth := middleware.RequireAuth(svc.Auth)
	requireStore := middleware.RequireStore(cfg.StoreConfigured)
	requireAdmin := middleware.RequireAdmin(svc.Admin, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// ============ AUTH ROUTES ============
	auth := app.Group("/auth")
	auth.Post("/logout", authHandler.Logout)
	auth.Use(requireStore)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)
	auth.Patch("/me", requireAuth, authHandler.UpdateMe)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	// Resetting someone else's password is an operator action
	auth.Post("/reset-password-by-username", requireAuth, requireAdmin, authHandler.ResetPasswordByUsername)

	// ============ SELLER ROUTES ============
	// Every query below is scoped to the caller's user id
	api := app.Group("/api", requireAuth, requireStore)

	api.Get("/products", invHandler.GetProducts)
	api.Post("/products", invHandler.CreateProduct)
	api.Patch("/products/:id", invHandler.UpdateProduct)
	api.Delete("/products/:id", invHandler.DeleteProduct)

	api.Get("/transactions", invHandler.GetTransactions)
	api.Post("/transactions", invHandler.CreateTransaction)

	api.Get("/shop", shopHandler.GetShop)
	api.Put("/shop", shopHandler.SaveShop)

	api.Get("/operational-costs", shopHandler.GetOperationalCosts)
	api.Post("/operational-costs", shopHandler.CreateOperationalCost)

	api.Get("/orders", orderHandler.GetOrders)
	api.Post("/orders", orderHandler.CreateOrder)
	api.Patch("/orders/:id", orderHandler.UpdateOrder)

	api.Get("/summary", reportHandler.GetSummary)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", requireAdmin)

	admin.Get("/users", adminHandler.GetUsers)
	admin.Patch("/users/:id", adminHandler.UpdateUserRole)
	admin.Get("/products", adminHandler.GetProducts)
	admin.Get("/orders", adminHandler.GetOrders)
	admin.Patch("/orders/:id", adminHandler.UpdateOrder)
	admin.Get("/transactions", adminHandler.GetTransactions)
	admin.Patch("/transactions/:id", adminHandler.UpdateTransaction)
	admin.Delete("/transactions/:id", adminHandler.DeleteTransaction)
	admin.Get("/summary", reportHandler.GetAdminSummary)

	// WebSocket Route
	if hub != nil {
		app.Get("/ws", wsUpgrade(svc.Auth), wsConnect(hub))
	}

	return app
}

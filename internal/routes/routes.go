package routes

import (
	"time"

	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/detailflowhq/detailflow/internal/handlers"
	"github.com/detailflowhq/detailflow/internal/middleware"
	"github.com/detailflowhq/detailflow/internal/modules"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
	tenantHandler *handlers.TenantHandler,
	featureModules []modules.Module,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no tenant required)
	api.Get("/health", healthHandler.Check)

	// Tenant provisioning and lookup (no tenant context required)
	api.Post("/tenants", tenantHandler.CreateTenant)
	api.Get("/tenants/:slug", tenantHandler.GetTenant)
	api.Put("/tenants", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), tenantHandler.UpdateTenant)

	// Organizations and locations
	api.Post("/organizations", middleware.JWTProtected(cfg), tenantHandler.CreateOrganization)
	api.Get("/organizations/:external_id", middleware.JWTProtected(cfg), tenantHandler.GetOrganization)
	api.Post("/locations", middleware.JWTProtected(cfg), tenantHandler.CreateLocation)
	api.Get("/locations", middleware.JWTProtected(cfg), tenantHandler.ListLocations)
	api.Put("/locations/:id", middleware.JWTProtected(cfg), tenantHandler.UpdateLocation)

	// Auth — public (tenant middleware already applied globally)
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// This prevents JWT middleware from affecting public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Webhooks — secret-authed, no JWT
	webhooks := api.Group("/webhooks")
	webhooks.Post("/identity", webhookHandler.HandleIdentityEvent)

	// Admin group (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))

	// Module routes - create a protected group for modules only
	// This ensures JWT middleware doesn't affect public routes
	protected := api.Group("/p", middleware.JWTProtected(cfg))
	for _, m := range featureModules {
		m.RegisterRoutes(protected, db, cfg)
		// If the module also implements AdminModule, register admin routes
		if am, ok := m.(modules.AdminModule); ok {
			am.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}

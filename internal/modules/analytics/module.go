package analytics

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AnalyticsModule owns no tables; it reads appointments, catalog services
// and detailers. All endpoints are admin-only, enforced both by the admin
// route group and by the service's own caller check.
type AnalyticsModule struct{}

func New() *AnalyticsModule {
	return &AnalyticsModule{}
}

func (m *AnalyticsModule) ID() string {
	return "analytics"
}

func (m *AnalyticsModule) Models() []interface{} {
	return nil
}

func (m *AnalyticsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	// Analytics is admin-only; nothing mounts on the general group.
}

func (m *AnalyticsModule) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewAnalyticsService(db)
	handler := NewAnalyticsHandler(service)

	router.Get("/analytics", handler.GetDetailedAnalytics)
	router.Get("/analytics/customers/:id/lifetime-value", handler.GetCustomerLifetimeValue)
	router.Get("/analytics/services/:id", handler.GetServiceAnalytics)
}

package catalog

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CatalogModule struct{}

func New() *CatalogModule {
	return &CatalogModule{}
}

func (m *CatalogModule) ID() string { return "catalog" }

func (m *CatalogModule) Models() []interface{} {
	return []interface{}{&Service{}}
}

func (m *CatalogModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewCatalogService(db)
	handler := NewCatalogHandler(service)

	router.Post("/services", handler.CreateService)
	router.Get("/services", handler.ListServices)
	router.Get("/services/:id", handler.GetService)
	router.Put("/services/:id", handler.UpdateService)
	router.Delete("/services/:id", handler.DeleteService)
}

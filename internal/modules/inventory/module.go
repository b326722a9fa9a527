package inventory

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryModule struct{}

func New() *InventoryModule {
	return &InventoryModule{}
}

func (m *InventoryModule) ID() string {
	return "inventory"
}

func (m *InventoryModule) Models() []interface{} {
	return []interface{}{&Item{}}
}

func (m *InventoryModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewInventoryService(db)
	handler := NewInventoryHandler(service)

	router.Post("/inventory", handler.CreateItem)
	router.Get("/inventory", handler.ListItems)
	router.Get("/inventory/low-stock", handler.ListLowStock)
	router.Get("/inventory/:id", handler.GetItem)
	router.Put("/inventory/:id", handler.UpdateItem)
	router.Patch("/inventory/:id/quantity", handler.AdjustQuantity)
	router.Delete("/inventory/:id", handler.DeleteItem)
}

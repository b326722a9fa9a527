package customers

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomersModule struct{}

func New() *CustomersModule {
	return &CustomersModule{}
}

func (m *CustomersModule) ID() string { return "customers" }

func (m *CustomersModule) Models() []interface{} {
	return []interface{}{
		&Customer{},
		&Vehicle{},
		&ServiceHistory{},
	}
}

func (m *CustomersModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewCustomerService(db)
	handler := NewCustomerHandler(service)

	router.Post("/customers", handler.CreateCustomer)
	router.Get("/customers", handler.ListCustomers)
	router.Get("/customers/:id", handler.GetCustomer)
	router.Put("/customers/:id", handler.UpdateCustomer)
	router.Get("/customers/:id/vehicles", handler.ListVehicles)

	router.Post("/vehicles", handler.AddVehicle)
	router.Get("/vehicles/:id", handler.GetVehicle)
	router.Get("/vehicles/:id/history", handler.VehicleHistory)
	router.Post("/service-history", handler.AddHistory)
}

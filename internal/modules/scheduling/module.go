package scheduling

import (
	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SchedulingModule wires appointments, detailers, availability and
// notifications behind the authenticated route group.
type SchedulingModule struct{}

func New() *SchedulingModule {
	return &SchedulingModule{}
}

func (m *SchedulingModule) ID() string {
	return "scheduling"
}

func (m *SchedulingModule) Models() []interface{} {
	return []interface{}{&Appointment{}, &Detailer{}, &Notification{}}
}

func (m *SchedulingModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewSchedulingService(db)
	handler := NewSchedulingHandler(service)

	router.Post("/appointments", handler.CreateAppointment)
	router.Get("/appointments", handler.ListAppointments)
	router.Get("/appointments/slots", handler.GetSlots)
	router.Get("/appointments/:id", handler.GetAppointment)
	router.Patch("/appointments/:id/status", handler.UpdateStatus)

	router.Post("/detailers", handler.CreateDetailer)
	router.Get("/detailers", handler.ListDetailers)

	router.Get("/notifications", handler.ListNotifications)
	router.Put("/notifications/:id/read", handler.MarkNotificationRead)
}

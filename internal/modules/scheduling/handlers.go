package scheduling

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchedulingHandler struct {
	schedulingService *SchedulingService
}

func NewSchedulingHandler(schedulingService *SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{schedulingService: schedulingService}
}

func (h *SchedulingHandler) CreateAppointment(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	appt, err := h.schedulingService.Create(tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound),
			errors.Is(err, customers.ErrCustomerNotFound),
			errors.Is(err, ErrDetailerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrSlotTaken):
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create appointment"})
	}
	return c.Status(fiber.StatusCreated).JSON(appt)
}

func (h *SchedulingHandler) ListAppointments(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "start_date and end_date are required"})
	}

	appts, err := h.schedulingService.ListRange(tenantID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch appointments"})
	}
	return c.JSON(appts)
}

func (h *SchedulingHandler) GetAppointment(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid appointment ID"})
	}

	appt, err := h.schedulingService.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch appointment"})
	}
	return c.JSON(appt)
}

func (h *SchedulingHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid appointment ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	appt, err := h.schedulingService.UpdateStatus(tenantID, id, req.Status)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrInvalidTransition) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update appointment"})
	}
	return c.JSON(appt)
}

func (h *SchedulingHandler) GetSlots(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "date is required"})
	}

	slots, err := h.schedulingService.Slots(tenantID, date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrClosedDay) {
			return c.JSON(SlotsResponse{Date: date, Slots: []string{}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to compute slots"})
	}
	return c.JSON(slots)
}

func (h *SchedulingHandler) CreateDetailer(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateDetailerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	d, err := h.schedulingService.CreateDetailer(tenantID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *SchedulingHandler) ListDetailers(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	detailers, err := h.schedulingService.ListDetailers(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch detailers"})
	}
	return c.JSON(detailers)
}

func (h *SchedulingHandler) ListNotifications(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	unreadOnly := c.Query("unread") == "true"
	notes, err := h.schedulingService.ListNotifications(tenantID, userID, unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch notifications"})
	}
	return c.JSON(notes)
}

func (h *SchedulingHandler) MarkNotificationRead(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid notification ID"})
	}

	if err := h.schedulingService.MarkNotificationRead(tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update notification"})
	}
	return c.JSON(fiber.Map{"read": true})
}

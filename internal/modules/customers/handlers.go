package customers

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	customerService *CustomerService
}

func NewCustomerHandler(customerService *CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	cust, err := h.customerService.Create(tenantID, &req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrEmailRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create customer"})
	}
	return c.Status(fiber.StatusCreated).JSON(cust)
}

func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	customers, err := h.customerService.List(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid customer ID"})
	}

	cust, err := h.customerService.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch customer"})
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid customer ID"})
	}

	var req UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	cust, err := h.customerService.Update(tenantID, id, &req)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrEmailRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update customer"})
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) AddVehicle(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	v, err := h.customerService.AddVehicle(tenantID, &req)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *CustomerHandler) GetVehicle(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	v, err := h.customerService.GetVehicle(tenantID, id)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch vehicle"})
	}
	return c.JSON(v)
}

func (h *CustomerHandler) ListVehicles(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	customerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid customer ID"})
	}

	vehicles, err := h.customerService.ListVehicles(tenantID, customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch vehicles"})
	}
	return c.JSON(vehicles)
}

func (h *CustomerHandler) AddHistory(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	history, err := h.customerService.AddHistory(tenantID, &req)
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to record service history"})
	}
	return c.Status(fiber.StatusCreated).JSON(history)
}

func (h *CustomerHandler) VehicleHistory(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	vehicleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	history, err := h.customerService.VehicleHistory(tenantID, vehicleID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch service history"})
	}
	return c.JSON(history)
}

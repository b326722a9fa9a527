package catalog

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *CatalogService
}

func NewCatalogHandler(catalogService *CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	svc, err := h.catalogService.Create(tenantID, &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidPrice) || errors.Is(err, ErrInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	services, err := h.catalogService.List(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch services"})
	}
	return c.JSON(services)
}

func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid service ID"})
	}

	svc, err := h.catalogService.Get(tenantID, id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch service"})
	}
	return c.JSON(svc)
}

func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid service ID"})
	}

	var req UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	svc, err := h.catalogService.Update(tenantID, id, &req)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidPrice) || errors.Is(err, ErrInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update service"})
	}
	return c.JSON(svc)
}

func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid service ID"})
	}

	if err := h.catalogService.Delete(tenantID, id); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete service"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

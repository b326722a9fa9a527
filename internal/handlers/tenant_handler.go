package handlers

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/dto"
	"github.com/detailflowhq/detailflow/internal/services"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

func (h *TenantHandler) CreateTenant(c *fiber.Ctx) error {
	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	t, err := h.tenantService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *TenantHandler) GetTenant(c *fiber.Ctx) error {
	slug := c.Params("slug")
	t, err := h.tenantService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch tenant"})
	}
	return c.JSON(t)
}

// UpdateTenant changes the calling admin's own tenant; settings replace
// the stored JSON wholesale.
func (h *TenantHandler) UpdateTenant(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	t, err := h.tenantService.Update(tenantID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update tenant"})
	}
	return c.JSON(t)
}

func (h *TenantHandler) CreateOrganization(c *fiber.Ctx) error {
	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	org, err := h.tenantService.CreateOrganization(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(org)
}

func (h *TenantHandler) GetOrganization(c *fiber.Ctx) error {
	org, err := h.tenantService.GetOrganizationByExternalID(c.Params("external_id"))
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch organization"})
	}
	return c.JSON(org)
}

func (h *TenantHandler) CreateLocation(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	loc, err := h.tenantService.CreateLocation(tenantID, &req)
	if err != nil {
		if errors.Is(err, services.ErrOrganizationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

func (h *TenantHandler) ListLocations(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	orgID, err := uuid.Parse(c.Query("organization_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid organization_id"})
	}

	locations, err := h.tenantService.ListLocations(tenantID, orgID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch locations"})
	}
	return c.JSON(locations)
}

func (h *TenantHandler) UpdateLocation(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid location ID"})
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	loc, err := h.tenantService.UpdateLocation(tenantID, id, &req)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update location"})
	}
	return c.JSON(loc)
}

package analytics

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/aggregate"
	"github.com/detailflowhq/detailflow/internal/modules/catalog"
	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analyticsService *AnalyticsService
}

func NewAnalyticsHandler(analyticsService *AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (h *AnalyticsHandler) GetDetailedAnalytics(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	result, err := h.analyticsService.GetDetailedAnalytics(
		tenantID,
		tenant.GetUserEmail(c),
		c.Query("start_date"),
		c.Query("end_date"),
		aggregate.Granularity(c.Query("group_by", string(aggregate.Daily))),
	)
	if err != nil {
		return analyticsError(c, err, "Failed to compute analytics")
	}
	return c.JSON(result)
}

func (h *AnalyticsHandler) GetCustomerLifetimeValue(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	customerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid customer ID"})
	}

	result, err := h.analyticsService.GetCustomerLifetimeValue(tenantID, tenant.GetUserEmail(c), customerID)
	if err != nil {
		return analyticsError(c, err, "Failed to compute lifetime value")
	}
	return c.JSON(result)
}

func (h *AnalyticsHandler) GetServiceAnalytics(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid service ID"})
	}

	result, err := h.analyticsService.GetServiceAnalytics(
		tenantID,
		tenant.GetUserEmail(c),
		serviceID,
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		return analyticsError(c, err, "Failed to compute service analytics")
	}
	return c.JSON(result)
}

func analyticsError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrInvalidGranularity):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, catalog.ErrServiceNotFound), errors.Is(err, customers.ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: fallback})
}

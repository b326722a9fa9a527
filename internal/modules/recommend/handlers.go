package recommend

import (
	"errors"

	"github.com/detailflowhq/detailflow/internal/modules/customers"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecommendHandler struct {
	recommendService *RecommendService
}

func NewRecommendHandler(recommendService *RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

type RecommendationsResponse struct {
	VehicleID       uuid.UUID `json:"vehicle_id"`
	Recommendations []string  `json:"recommendations"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func (h *RecommendHandler) GetRecommendations(c *fiber.Ctx) error {
	tenantID, ok := tenant.GetTenantID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Tenant context is required"})
	}

	vehicleID, err := uuid.Parse(c.Params("vehicleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid vehicle ID"})
	}

	recs, err := h.recommendService.ForVehicle(tenantID, vehicleID)
	if err != nil {
		if errors.Is(err, customers.ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to compute recommendations"})
	}
	return c.JSON(RecommendationsResponse{VehicleID: vehicleID, Recommendations: recs})
}

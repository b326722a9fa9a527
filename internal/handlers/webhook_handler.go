package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/detailflowhq/detailflow/internal/dto"
	"github.com/detailflowhq/detailflow/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	userSync *services.UserSyncService
	cfg      *config.Config
}

func NewWebhookHandler(userSync *services.UserSyncService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{userSync: userSync, cfg: cfg}
}

// HandleIdentityEvent receives identity-provider webhooks (user and
// organization membership changes) authenticated by a shared secret.
func (h *WebhookHandler) HandleIdentityEvent(c *fiber.Ctx) error {
	if h.cfg.IdentityWebhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.cfg.IdentityWebhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var event dto.IdentityEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.userSync.Handle(&event); err != nil {
		if errors.Is(err, services.ErrUnknownEventType) {
			// Acknowledge unhandled event types so the provider stops retrying.
			slog.Info("identity event ignored", "event_type", event.Type)
			return c.JSON(fiber.Map{"received": true})
		}
		slog.Error("identity webhook failed", "event_type", event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process identity event",
		})
	}

	slog.Info("identity event processed", "event_type", event.Type)
	return c.JSON(fiber.Map{"received": true})
}

package middleware

import (
	"errors"
	"strings"

	"github.com/detailflowhq/detailflow/internal/config"
	"github.com/detailflowhq/detailflow/internal/dto"
	"github.com/detailflowhq/detailflow/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Paths that don't require tenant identification.
var tenantSkipPaths = []string{
	"/api/health",
	"/api/tenants",   // tenant provisioning resolves by slug/body instead
	"/api/webhooks/", // webhooks carry tenant context in the payload
}

// TenantMiddleware resolves the request's tenant from the JWT claim, the
// X-Tenant-ID header, or a tenant slug query param, in that order. The
// resolved UUID lands in context locals; downstream queries must scope
// with tenant.ForTenant.
//
// This runs before the route-level JWT middleware, so the claim branch
// verifies the bearer token itself. An invalid token is not rejected
// here; the JWT middleware still guards protected routes.
func TenantMiddleware(resolver *tenant.Resolver, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range tenantSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		// 1. JWT tenant_id claim
		if id, ok := tenantFromBearer(c, cfg.JWTSecret); ok {
			c.Locals("tenant_id", id)
			return c.Next()
		}

		// 2. X-Tenant-ID header
		if raw := c.Get("X-Tenant-ID"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Invalid X-Tenant-ID: " + raw,
				})
			}
			t, err := resolver.ByID(id)
			if err != nil {
				if errors.Is(err, tenant.ErrTenantNotFound) {
					return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
						Error:   true,
						Message: "Unknown tenant: " + raw,
					})
				}
				return fiber.ErrInternalServerError
			}
			c.Locals("tenant_id", t.ID)
			return c.Next()
		}

		// 3. Slug query param (public booking pages)
		if slug := c.Query("tenant"); slug != "" {
			t, err := resolver.BySlug(slug)
			if err != nil {
				if errors.Is(err, tenant.ErrTenantNotFound) {
					return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
						Error:   true,
						Message: "Unknown tenant: " + slug,
					})
				}
				return fiber.ErrInternalServerError
			}
			c.Locals("tenant_id", t.ID)
			return c.Next()
		}

		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "X-Tenant-ID header is required",
		})
	}
}

func tenantFromBearer(c *fiber.Ctx, secret string) (uuid.UUID, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return uuid.Nil, false
	}
	token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := claims["tenant_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

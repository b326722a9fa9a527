package tenant

import (
	"encoding/json"
	"errors"

	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Resolver looks tenants up in the database per request. Tenant
// configuration is deliberately not cached process-wide; callers get a
// fresh row and decode settings into an explicit value they pass along.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) ByID(id uuid.UUID) (*models.Tenant, error) {
	var t models.Tenant
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Resolver) BySlug(slug string) (*models.Tenant, error) {
	var t models.Tenant
	if err := r.db.First(&t, "slug = ? OR subdomain = ?", slug, slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Settings decodes a tenant's settings JSON, applying defaults for
// anything unset.
func Settings(t *models.Tenant) models.TenantSettings {
	s := models.TenantSettings{SlotDurationMinutes: 60}
	if len(t.Settings) > 0 {
		_ = json.Unmarshal(t.Settings, &s)
	}
	if s.SlotDurationMinutes <= 0 {
		s.SlotDurationMinutes = 60
	}
	return s
}

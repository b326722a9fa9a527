package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry a tenant offers: one detailing package with
// its current price and how long it blocks the schedule.
type Service struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	Description     string         `gorm:"size:1000" json:"description,omitempty"`
	Price           float64        `gorm:"not null;check:price >= 0" json:"price"`
	DurationMinutes int            `gorm:"not null;default:60" json:"duration_minutes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Service) TableName() string {
	return "catalog_services"
}

// --- DTOs ---

type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

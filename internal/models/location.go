package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical branch of an organization.
type Location struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Address        string    `gorm:"size:500" json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

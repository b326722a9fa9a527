package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization mirrors the identity provider's organization object for a
// tenant's business entity.
type Organization struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ExternalOrgID string    `gorm:"size:255;uniqueIndex" json:"external_org_id"`
	Slug          string    `gorm:"size:100" json:"slug"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	Address       string    `gorm:"size:500" json:"address"`
	PhoneNumber   string    `gorm:"size:50" json:"phone_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

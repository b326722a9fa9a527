package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant is an isolated detailing business. Every other record carries a
// TenantID; nothing crosses tenants.
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"not null;size:100;uniqueIndex" json:"slug"`
	Subdomain string         `gorm:"size:100;uniqueIndex" json:"subdomain"`
	Settings  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BusinessHour is one weekday's opening window inside Tenant.Settings.
type BusinessHour struct {
	Day   string `json:"day"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// TenantSettings is the decoded shape of Tenant.Settings. It is resolved
// per request; there is no process-wide settings cache.
type TenantSettings struct {
	BusinessHours       []BusinessHour `json:"business_hours"`
	SlotDurationMinutes int            `json:"slot_duration_minutes"`
	PrimaryColor        string         `json:"primary_color,omitempty"`
	SecondaryColor      string         `json:"secondary_color,omitempty"`
}

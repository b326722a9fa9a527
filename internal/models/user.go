package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. A User is anyone who can sign in; detailers and customers
// also exist as domain rows in their own tables.
const (
	RoleAdmin    = "admin"
	RoleDetailer = "detailer"
	RoleCustomer = "customer"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email" json:"-"`
	Email        string         `gorm:"not null;size:255;uniqueIndex:idx_users_tenant_email;index" json:"email"`
	Name         string         `gorm:"size:255" json:"name"`
	Password     string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:20;default:'customer'" json:"role"`
	ExternalID   *string        `gorm:"size:255;index" json:"-"` // identity-provider subject
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	Phone        string         `gorm:"size:50" json:"phone,omitempty"`
	ImageURL     string         `gorm:"size:500" json:"image_url,omitempty"`
	LocationID   *uuid.UUID     `gorm:"type:uuid;index" json:"location_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
